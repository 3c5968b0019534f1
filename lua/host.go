package lua

// Host receives what scripts ask of the application.
// Keeping it narrow lets the engine run under a mock in tests.
type Host interface {
	// Print shows a message to the learner.
	Print(text string)

	// SetCapacity overrides the repetition window of a category.
	SetCapacity(category string, n int)

	// SetDefaultFilter replaces the default values of one filter dimension.
	SetDefaultFilter(kind, dimension string, values []string)
}
