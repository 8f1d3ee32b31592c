package live

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/toolbox/pkg/view"
)

// ErrConnClosed is returned by writes after the connection has closed.
var ErrConnClosed = errors.New("live: connection closed")

// Conn is the server-side mirror of one browser tab's history.
// It implements history.History.
type Conn struct {
	ws           *websocket.Conn
	logger       *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration

	// writeMu serializes frames; gorilla connections allow one writer.
	writeMu sync.Mutex

	mu       sync.Mutex
	current  string
	handlers map[int]func(string)
	order    []int
	nextID   int
	closed   bool
}

// NewConn wraps ws. initial is the path the page was loaded at.
func NewConn(ws *websocket.Conn, initial string, cfg Config) *Conn {
	if initial == "" {
		initial = "/"
	}
	cfg = cfg.withDefaults()
	return &Conn{
		ws:           ws,
		logger:       cfg.Logger,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		current:      initial,
		handlers:     make(map[int]func(string)),
	}
}

// Push implements history.History.
func (c *Conn) Push(path string) error {
	return c.record(TypePush, path)
}

// Replace implements history.History.
func (c *Conn) Replace(path string) error {
	return c.record(TypeReplace, path)
}

func (c *Conn) record(op, path string) error {
	if err := c.send(Message{Type: op, Path: path}); err != nil {
		return err
	}
	c.mu.Lock()
	c.current = path
	c.mu.Unlock()
	return nil
}

// CurrentPath implements history.History.
func (c *Conn) CurrentPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// OnPopState implements history.History.
func (c *Conn) OnPopState(handler func(path string)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = handler
	c.order = append(c.order, id)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers, id)
	}
}

// Slot returns a slot that streams renders for target to the browser.
// It has the signature nav.WithSlotFactory expects.
func (c *Conn) Slot(target view.Target) view.Slot {
	return &slot{conn: c, target: target}
}

// SendError reports err to the browser.
func (c *Conn) SendError(err error) error {
	return c.send(Message{Type: TypeError, Error: err.Error()})
}

func (c *Conn) send(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrConnClosed
	}

	if c.writeTimeout > 0 {
		c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.ws.WriteJSON(msg)
}

// ReadLoop reads client frames until the connection closes.
// Popstate frames move the current path and fire OnPopState handlers in
// registration order; navigate frames go to onNavigate. Handlers run on the
// read goroutine and must not wait for a view to load, or later frames
// queue behind it. ReadLoop blocks, and returns nil when the peer closes
// normally.
func (c *Conn) ReadLoop(onNavigate func(path string, replace bool)) error {
	for {
		if c.readTimeout > 0 {
			c.ws.SetReadDeadline(time.Now().Add(c.readTimeout))
		}

		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				return err
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return nil
			}
			return err
		}

		switch msg.Type {
		case TypePopState:
			c.popState(msg.Path)
		case TypeNavigate:
			if onNavigate != nil {
				onNavigate(msg.Path, msg.Replace)
			}
		default:
			c.logger.Warn("live: unknown message type", "type", msg.Type)
		}
	}
}

func (c *Conn) popState(path string) {
	c.mu.Lock()
	c.current = path
	fns := make([]func(string), 0, len(c.handlers))
	for _, id := range c.order {
		if fn, ok := c.handlers[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.ws.Close()
}

// slot streams render frames over its connection.
type slot struct {
	conn   *Conn
	target view.Target
}

func (s *slot) Path() string  { return s.target.Path }
func (s *slot) Route() string { return s.target.Route }
func (s *slot) Query() string { return s.target.Query }

func (s *slot) Render(content any) error {
	return s.conn.send(Message{
		Type:    TypeRender,
		Route:   s.target.Route,
		Path:    s.target.Path,
		Content: content,
	})
}
