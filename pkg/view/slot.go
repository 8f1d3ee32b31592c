package view

import "sync"

// Target identifies what a slot is displaying.
type Target struct {
	Route string
	Path  string
	Query string
}

// MemorySlot keeps the last rendered content in memory.
// It is the slot used by the CLI and by tests.
type MemorySlot struct {
	target Target

	mu      sync.Mutex
	content any
	renders int
}

// NewMemorySlot creates a slot for the given target.
func NewMemorySlot(target Target) *MemorySlot {
	return &MemorySlot{target: target}
}

// Path implements Slot.
func (s *MemorySlot) Path() string { return s.target.Path }

// Route implements Slot.
func (s *MemorySlot) Route() string { return s.target.Route }

// Query implements Slot.
func (s *MemorySlot) Query() string { return s.target.Query }

// Render implements Slot.
func (s *MemorySlot) Render(content any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
	s.renders++
	return nil
}

// Content returns the last rendered content.
func (s *MemorySlot) Content() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Renders returns how many times Render was called.
func (s *MemorySlot) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}
