package lua

import "sync"

// MockHost implements Host for testing.
type MockHost struct {
	mu sync.Mutex

	// Captured calls
	PrintCalls []string
	Capacities map[string]int
	Filters    map[string]map[string][]string
}

func NewMockHost() *MockHost {
	return &MockHost{
		Capacities: make(map[string]int),
		Filters:    make(map[string]map[string][]string),
	}
}

func (m *MockHost) Print(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PrintCalls = append(m.PrintCalls, text)
}

func (m *MockHost) SetCapacity(category string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Capacities[category] = n
}

func (m *MockHost) SetDefaultFilter(kind, dimension string, values []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Filters[kind] == nil {
		m.Filters[kind] = make(map[string][]string)
	}
	m.Filters[kind][dimension] = values
}

// Helper methods for tests

func (m *MockHost) DrainPrintCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := m.PrintCalls
	m.PrintCalls = nil
	return calls
}
