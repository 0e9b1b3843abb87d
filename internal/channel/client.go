// Package channel is the websocket link between the editor and the workspace
// server. It carries compile requests and results, format requests, and
// keepalive pings, and reports when the link drops or comes back.
package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/jask/codepad/internal/workspace/project"
)

// ErrDetached is returned by requests made while the link is down.
var ErrDetached = errors.New("workspace channel detached")

const (
	minBackoff = 200 * time.Millisecond
	maxBackoff = 5 * time.Second

	// DefaultFormatTimeout bounds how long Format waits for the server.
	DefaultFormatTimeout = 10 * time.Second
)

type packageFrame struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// frame is the single JSON shape used in both directions.
type frame struct {
	Type     string                 `json:"type"`
	Token    string                 `json:"token,omitempty"`
	Ref      string                 `json:"ref,omitempty"`
	Code     string                 `json:"code,omitempty"`
	Markup   string                 `json:"markup,omitempty"`
	Packages []packageFrame         `json:"packages,omitempty"`
	Errors   []project.CompileError `json:"errors,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

type formatResult struct {
	code string
	err  error
}

// Client keeps one websocket open to the workspace server, redialing with
// backoff whenever it drops.
type Client struct {
	url   string
	token string
	log   *slog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	changed   chan struct{}
	pending   map[string]chan formatResult

	compiled      chan []project.CompileError
	formatTimeout time.Duration
}

func New(url, token string, logger *slog.Logger) *Client {
	return &Client{
		url:           url,
		token:         token,
		log:           logger.With("component", "channel"),
		changed:       make(chan struct{}),
		pending:       make(map[string]chan formatResult),
		compiled:      make(chan []project.CompileError, 8),
		formatTimeout: DefaultFormatTimeout,
	}
}

// Run dials and serves the link until ctx is done.
func (c *Client) Run(ctx context.Context) {
	backoff := minBackoff
	for {
		conn, _, err := websocket.Dial(ctx, c.url, nil)
		if err == nil {
			backoff = minBackoff
			err = c.serve(ctx, conn)
		}
		if ctx.Err() != nil {
			return
		}
		c.log.Warn("workspace channel down", "error", err, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func (c *Client) serve(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close(websocket.StatusNormalClosure, "closing")

	if err := wsjson.Write(ctx, conn, frame{Type: "join", Token: c.token}); err != nil {
		return fmt.Errorf("join: %w", err)
	}
	c.setConn(conn)
	defer c.setConn(nil)
	c.log.Info("workspace channel attached", "url", c.url)

	for {
		var f frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			return err
		}
		c.dispatch(f)
	}
}

func (c *Client) dispatch(f frame) {
	switch f.Type {
	case "compiled":
		select {
		case c.compiled <- f.Errors:
		default:
			c.log.Warn("dropping compile result, consumer is behind")
		}
	case "formatted":
		c.mu.Lock()
		ch, ok := c.pending[f.Ref]
		delete(c.pending, f.Ref)
		c.mu.Unlock()
		if !ok {
			return
		}
		var err error
		if f.Error != "" {
			err = errors.New(f.Error)
		}
		ch <- formatResult{code: f.Code, err: err}
	default:
		c.log.Debug("ignoring frame", "type", f.Type)
	}
}

// setConn records the live connection (nil when down), wakes waiters and
// fails outstanding format requests on disconnect.
func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = conn
	connected := conn != nil
	if connected == c.connected {
		return
	}
	c.connected = connected
	close(c.changed)
	c.changed = make(chan struct{})
	if !connected {
		for ref, ch := range c.pending {
			ch <- formatResult{err: ErrDetached}
			delete(c.pending, ref)
		}
	}
}

// WaitConnected blocks until the link state equals want.
func (c *Client) WaitConnected(ctx context.Context, want bool) error {
	for {
		c.mu.Lock()
		state, changed := c.connected, c.changed
		c.mu.Unlock()
		if state == want {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// Compiled delivers every compile result pushed by the server.
func (c *Client) Compiled() <-chan []project.CompileError {
	return c.compiled
}

func (c *Client) current() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, ErrDetached
	}
	return c.conn, nil
}

// Compile sends content for compilation. The result arrives on Compiled.
func (c *Client) Compile(ctx context.Context, token string, content project.Content) error {
	conn, err := c.current()
	if err != nil {
		return err
	}
	pkgs := make([]packageFrame, 0, len(content.Packages))
	for _, p := range content.Packages {
		pkgs = append(pkgs, packageFrame{Name: p.Name, Version: p.Version})
	}
	return wsjson.Write(ctx, conn, frame{
		Type:     "compile",
		Token:    token,
		Code:     content.Code,
		Markup:   content.Markup,
		Packages: pkgs,
	})
}

// Format asks the server to format code and waits for the answer, at most
// DefaultFormatTimeout.
func (c *Client) Format(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.formatTimeout)
	defer cancel()
	conn, err := c.current()
	if err != nil {
		return "", err
	}
	ref := uuid.NewString()
	ch := make(chan formatResult, 1)
	c.mu.Lock()
	c.pending[ref] = ch
	c.mu.Unlock()

	if err := wsjson.Write(ctx, conn, frame{Type: "format", Ref: ref, Code: code}); err != nil {
		c.mu.Lock()
		delete(c.pending, ref)
		c.mu.Unlock()
		return "", err
	}
	select {
	case res := <-ch:
		return res.code, res.err
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, ref)
		c.mu.Unlock()
		return "", ctx.Err()
	}
}

// Ping checks the link is alive. It needs the read loop in Run to be going.
func (c *Client) Ping(ctx context.Context) error {
	conn, err := c.current()
	if err != nil {
		return err
	}
	return conn.Ping(ctx)
}
