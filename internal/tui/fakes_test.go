package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/codepad/internal/logging"
	"github.com/jask/codepad/internal/workspace/project"
)

var errBoom = errors.New("boom")

type fakeStore struct {
	mu   sync.Mutex
	revs map[uuid.UUID]project.Revision
}

func newFakeStore(revs ...project.Revision) *fakeStore {
	s := &fakeStore{revs: make(map[uuid.UUID]project.Revision)}
	for _, r := range revs {
		s.revs[r.ID] = r
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, id uuid.UUID) (project.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rev, ok := s.revs[id]
	if !ok {
		return project.Revision{}, errBoom
	}
	return rev, nil
}

func (s *fakeStore) Create(_ context.Context, title string, content project.Content) (project.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rev := project.Revision{ID: uuid.New(), Title: title, Content: content, CreatedAt: time.Now()}
	s.revs[rev.ID] = rev
	return rev, nil
}

type fakeChannel struct {
	mu         sync.Mutex
	connected  bool
	compileErr error
	compiles   []project.Content
	pings      int
	compiled   chan []project.CompileError
}

func newFakeChannel(connected bool) *fakeChannel {
	return &fakeChannel{connected: connected, compiled: make(chan []project.CompileError, 4)}
}

func (c *fakeChannel) Compile(_ context.Context, _ string, content project.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.compileErr != nil {
		return c.compileErr
	}
	c.compiles = append(c.compiles, content)
	return nil
}

func (c *fakeChannel) Format(_ context.Context, code string) (string, error) {
	return "formatted:" + code, nil
}

func (c *fakeChannel) Ping(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pings++
	return nil
}

// WaitConnected returns at once when the state already matches and otherwise
// blocks until ctx ends.
func (c *fakeChannel) WaitConnected(ctx context.Context, want bool) error {
	c.mu.Lock()
	state := c.connected
	c.mu.Unlock()
	if state == want {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (c *fakeChannel) Compiled() <-chan []project.CompileError { return c.compiled }

type fakeSearcher struct {
	results []project.Package
	notify  chan struct{}
}

func newFakeSearcher(results ...project.Package) *fakeSearcher {
	return &fakeSearcher{results: results, notify: make(chan struct{}, 1)}
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]project.Package, error) {
	if query == "fail" {
		return nil, errBoom
	}
	return f.results, nil
}

func (f *fakeSearcher) Subscribe() (<-chan struct{}, func()) {
	return f.notify, func() {}
}

func testDeps(store *fakeStore, ch *fakeChannel, search *fakeSearcher) Deps {
	return Deps{
		Revisions: store,
		Channel:   ch,
		Packages:  search,
		Log:       logging.Discard(),
	}
}

// runCmd executes cmd with a deadline so a blocked command fails the test
// instead of hanging it.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("nil command")
	}
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not finish")
		return nil
	}
}
