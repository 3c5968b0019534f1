package ui

import "sync"

// Notes collects messages printed by scripts until a front end shows them.
// Print may be called from any goroutine.
type Notes struct {
	mu    sync.Mutex
	lines []string
}

// Print queues a message.
func (n *Notes) Print(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lines = append(n.lines, text)
}

// Drain returns and clears the queued messages.
func (n *Notes) Drain() []string {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	lines := n.lines
	n.lines = nil
	return lines
}
