package history

import "testing"

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMemoryPushReplace(t *testing.T) {
	h := NewMemory("")
	if h.CurrentPath() != "/" {
		t.Fatalf("CurrentPath() = %q, want /", h.CurrentPath())
	}

	h.Push("/a")
	h.Push("/b")
	h.Replace("/c")

	if got := paths(h.Entries()); !equal(got, []string{"/", "/a", "/c"}) {
		t.Errorf("Entries() = %v", got)
	}
	if h.Len() != 3 || h.Index() != 2 {
		t.Errorf("Len/Index = %d/%d", h.Len(), h.Index())
	}
}

func TestMemoryBackForwardFiresPopState(t *testing.T) {
	h := NewMemory("/")
	h.Push("/a")
	h.Push("/b")

	var popped []string
	unsubscribe := h.OnPopState(func(path string) {
		popped = append(popped, path)
	})

	if !h.Back() {
		t.Fatal("Back() should succeed")
	}
	if h.CurrentPath() != "/a" {
		t.Errorf("CurrentPath() after Back = %q", h.CurrentPath())
	}
	if !h.Forward() {
		t.Fatal("Forward() should succeed")
	}
	if h.Forward() {
		t.Error("Forward() at the end should fail")
	}
	if !equal(popped, []string{"/a", "/b"}) {
		t.Errorf("popped = %v", popped)
	}

	// Traversal never grows the stack.
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}

	unsubscribe()
	h.Back()
	if len(popped) != 2 {
		t.Errorf("handler called after unsubscribe: %v", popped)
	}
}

func TestMemoryPushTruncatesForward(t *testing.T) {
	h := NewMemory("/")
	h.Push("/a")
	h.Push("/b")
	h.Back()
	h.Back()
	h.Push("/c")

	if got := paths(h.Entries()); !equal(got, []string{"/", "/c"}) {
		t.Errorf("Entries() = %v", got)
	}
	if h.Forward() {
		t.Error("forward entries should be gone")
	}
}

func TestMemoryGoOutOfRange(t *testing.T) {
	h := NewMemory("/")
	if h.Back() || h.Go(0) || h.Go(5) {
		t.Error("out of range moves should fail")
	}
	h.Push("/a")
	h.Push("/b")
	if !h.Go(-2) || h.CurrentPath() != "/" {
		t.Errorf("Go(-2) landed on %q", h.CurrentPath())
	}
}

func TestMemoryHandlersInRegistrationOrder(t *testing.T) {
	h := NewMemory("/")
	h.Push("/a")

	var order []int
	h.OnPopState(func(string) { order = append(order, 1) })
	h.OnPopState(func(string) { order = append(order, 2) })
	h.Back()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v", order)
	}
}
