package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/toolbox/pkg/middleware"
	"github.com/vango-dev/toolbox/pkg/nav"
)

// Config configures live connections.
type Config struct {
	// Logger receives connection diagnostics. Default: slog.Default().
	Logger *slog.Logger

	// HelloTimeout bounds the wait for the client's hello frame.
	// Default: 10s.
	HelloTimeout time.Duration

	// ReadTimeout is the per-frame read deadline after hello. Zero
	// means tabs may stay idle indefinitely.
	ReadTimeout time.Duration

	// WriteTimeout is the per-frame write deadline. Default: 10s.
	WriteTimeout time.Duration

	// Metrics, when set, tracks connected clients and socket errors.
	Metrics *middleware.Metrics

	// CheckOrigin overrides the upgrader's origin check.
	CheckOrigin func(r *http.Request) bool
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.HelloTimeout == 0 {
		c.HelloTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	return c
}

// SessionFunc builds the controller for a new connection. The controller
// should navigate conn, typically with conn as history, conn.Slot as slot
// factory and nav.WithDetachedPopState so back/forward frames do not hold
// up the read loop.
type SessionFunc func(ctx context.Context, conn *Conn) (*nav.Controller, error)

// Handler upgrades requests and runs one navigation session per socket.
type Handler struct {
	config     Config
	upgrader   websocket.Upgrader
	newSession SessionFunc
}

// NewHandler creates a handler running sessions built by fn.
func NewHandler(fn SessionFunc, cfg Config) *Handler {
	cfg = cfg.withDefaults()
	return &Handler{
		config:     cfg,
		newSession: fn,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.config.Metrics.WebSocketError("upgrade")
		h.config.Logger.Debug("live: upgrade failed", "error", err)
		return
	}

	h.config.Metrics.LiveConnected()
	defer h.config.Metrics.LiveDisconnected()

	if err := h.serve(r.Context(), ws); err != nil {
		h.config.Metrics.WebSocketError("session")
		h.config.Logger.Warn("live: session ended", "remote", r.RemoteAddr, "error", err)
	}
}

func (h *Handler) serve(ctx context.Context, ws *websocket.Conn) error {
	initial, err := readHello(ws, h.config.HelloTimeout)
	if err != nil {
		ws.Close()
		return err
	}

	conn := NewConn(ws, initial, h.config)
	defer conn.Close()

	// Navigations outlive the read loop until the controller is closed.
	var inflight sync.WaitGroup
	defer inflight.Wait()

	ctrl, err := h.newSession(ctx, conn)
	if err != nil {
		_ = conn.SendError(err)
		return fmt.Errorf("live: create session: %w", err)
	}
	defer ctrl.Close(ctx)

	if _, err := ctrl.Start(ctx); err != nil {
		_ = conn.SendError(err)
	}

	// Each navigate frame runs on its own goroutine. The read loop only
	// waits until the navigation is admitted, so the next frame can
	// supersede a slow view load.
	return conn.ReadLoop(func(path string, replace bool) {
		admitted := make(chan struct{})
		opts := []nav.NavigateOption{nav.WithAdmitted(func() { close(admitted) })}
		if replace {
			opts = append(opts, nav.WithReplace())
		}
		inflight.Add(1)
		go func() {
			defer inflight.Done()
			_, err := ctrl.Navigate(ctx, path, opts...)
			if err != nil && !errors.Is(err, nav.ErrSuperseded) && !errors.Is(err, nav.ErrClosed) {
				_ = conn.SendError(err)
			}
		}()
		<-admitted
	})
}

func readHello(ws *websocket.Conn, timeout time.Duration) (string, error) {
	ws.SetReadDeadline(time.Now().Add(timeout))
	defer ws.SetReadDeadline(time.Time{})

	var msg Message
	if err := ws.ReadJSON(&msg); err != nil {
		return "", fmt.Errorf("live: read hello: %w", err)
	}
	if msg.Type != TypeHello {
		return "", fmt.Errorf("live: expected hello, got %q", msg.Type)
	}
	return msg.Path, nil
}
