package live

// Message types.
const (
	TypeHello    = "hello"
	TypeNavigate = "navigate"
	TypePopState = "popstate"
	TypePush     = "push"
	TypeReplace  = "replace"
	TypeRender   = "render"
	TypeError    = "error"
)

// Message is a single frame in either direction.
type Message struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`
	Route   string `json:"route,omitempty"`
	Content any    `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}
