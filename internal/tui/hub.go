package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/codepad/internal/workspace"
	"github.com/jask/codepad/internal/workspace/pane"
)

// hubMsg wraps a message produced by a listener so the model knows to
// re-arm Wait after handling it.
type hubMsg struct {
	msg workspace.Msg
}

// Hub keeps one goroutine per active listener and funnels their events into
// a single channel the program reads from. Sync and Wait are called from the
// bubbletea update loop only.
type Hub struct {
	ctx    context.Context
	deps   Deps
	log    *slog.Logger
	events chan workspace.Msg
	active map[string]context.CancelFunc
}

func NewHub(ctx context.Context, deps Deps) *Hub {
	return &Hub{
		ctx:    ctx,
		deps:   deps,
		log:    deps.Log.With("component", "hub"),
		events: make(chan workspace.Msg, 32),
		active: make(map[string]context.CancelFunc),
	}
}

// Sync starts listeners that are new in subs and stops the ones that are gone.
func (h *Hub) Sync(subs []workspace.Listener) {
	want := make(map[string]workspace.Listener, len(subs))
	for _, l := range subs {
		want[l.Key()] = l
	}
	for key, cancel := range h.active {
		if _, ok := want[key]; !ok {
			cancel()
			delete(h.active, key)
			h.log.Debug("listener stopped", "key", key)
		}
	}
	for key, l := range want {
		if _, ok := h.active[key]; ok {
			continue
		}
		ctx, cancel := context.WithCancel(h.ctx)
		h.active[key] = cancel
		h.log.Debug("listener started", "key", key)
		go h.run(ctx, l)
	}
}

// Active returns the keys of the running listeners.
func (h *Hub) Active() []string {
	keys := make([]string, 0, len(h.active))
	for k := range h.active {
		keys = append(keys, k)
	}
	return keys
}

// Wait returns a command that delivers the next listener event.
func (h *Hub) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-h.events:
			return hubMsg{msg: msg}
		case <-h.ctx.Done():
			return nil
		}
	}
}

// Stop cancels every listener.
func (h *Hub) Stop() {
	for key, cancel := range h.active {
		cancel()
		delete(h.active, key)
	}
}

func (h *Hub) emit(ctx context.Context, msg workspace.Msg) bool {
	select {
	case h.events <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func (h *Hub) run(ctx context.Context, l workspace.Listener) {
	switch l := l.(type) {
	case workspace.KeepAliveListener:
		h.keepAlive(ctx, l.Every)
	case workspace.CompileFinishedListener:
		for {
			select {
			case <-ctx.Done():
				return
			case errs := <-h.deps.Channel.Compiled():
				if !h.emit(ctx, workspace.CompileFinished{Errors: errs}) {
					return
				}
			}
		}
	case workspace.DetachedListener:
		if h.deps.Channel.WaitConnected(ctx, false) == nil {
			h.emit(ctx, workspace.WorkspaceDetached{})
		}
	case workspace.AttachedListener:
		if h.deps.Channel.WaitConnected(ctx, true) == nil {
			h.emit(ctx, workspace.WorkspaceAttached{})
		}
	case workspace.PaneListener:
		h.runPane(ctx, l)
	default:
		h.log.Warn("unknown listener", "key", l.Key())
	}
}

func (h *Hub) keepAlive(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := h.deps.Channel.Ping(ctx); err != nil {
				h.log.Debug("keepalive ping failed", "error", err)
			}
			if !h.emit(ctx, workspace.KeepAlive{}) {
				return
			}
		}
	}
}

func (h *Hub) runPane(ctx context.Context, l workspace.PaneListener) {
	switch l.Listener.(type) {
	case pane.CatalogListener:
		ch, cancel := h.deps.Packages.Subscribe()
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				if !h.emit(ctx, workspace.PaneMsg{Kind: l.Kind, Msg: pane.CatalogRefreshed{}}) {
					return
				}
			}
		}
	default:
		h.log.Warn("unknown pane listener", "key", l.Key())
	}
}
