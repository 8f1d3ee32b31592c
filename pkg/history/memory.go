package history

import "sync"

// Memory is an in-memory History with a back/forward stack.
type Memory struct {
	mu       sync.Mutex
	entries  []Entry
	index    int
	handlers map[int]func(string)
	nextID   int
}

var _ History = (*Memory)(nil)

// NewMemory creates a history whose single entry is initial.
// An empty initial path means "/".
func NewMemory(initial string) *Memory {
	if initial == "" {
		initial = "/"
	}
	return &Memory{
		entries:  []Entry{{Path: initial}},
		handlers: make(map[int]func(string)),
	}
}

// Push implements History.
func (m *Memory) Push(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries[:m.index+1], Entry{Path: path})
	m.index = len(m.entries) - 1
	return nil
}

// Replace implements History.
func (m *Memory) Replace(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.index] = Entry{Path: path}
	return nil
}

// CurrentPath implements History.
func (m *Memory) CurrentPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index].Path
}

// OnPopState implements History.
func (m *Memory) OnPopState(handler func(path string)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.handlers[id] = handler
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.handlers, id)
	}
}

// Back moves one entry back. It reports false at the start of the stack.
func (m *Memory) Back() bool {
	return m.Go(-1)
}

// Forward moves one entry forward. It reports false at the end of the stack.
func (m *Memory) Forward() bool {
	return m.Go(1)
}

// Go moves delta entries and fires pop-state handlers synchronously.
// Out-of-range moves are ignored and report false.
func (m *Memory) Go(delta int) bool {
	m.mu.Lock()
	target := m.index + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return false
	}
	m.index = target
	path := m.entries[target].Path
	handlers := make([]func(string), 0, len(m.handlers))
	for id := 0; id < m.nextID; id++ {
		if h, ok := m.handlers[id]; ok {
			handlers = append(handlers, h)
		}
	}
	m.mu.Unlock()

	for _, h := range handlers {
		h(path)
	}
	return true
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Index returns the position of the current entry.
func (m *Memory) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Entries returns a copy of the stack.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
