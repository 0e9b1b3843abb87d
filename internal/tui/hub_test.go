package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/codepad/internal/workspace"
	"github.com/jask/codepad/internal/workspace/pane"
	"github.com/jask/codepad/internal/workspace/project"
)

func newHub(t *testing.T, ch *fakeChannel, search *fakeSearcher) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(ctx, testDeps(newFakeStore(), ch, search))
	t.Cleanup(h.Stop)
	return h
}

func nextEvent(t *testing.T, h *Hub) workspace.Msg {
	t.Helper()
	msg, ok := runCmd(t, h.Wait()).(hubMsg)
	require.True(t, ok)
	return msg.msg
}

func TestHubSyncStartsAndStops(t *testing.T) {
	h := newHub(t, newFakeChannel(false), newFakeSearcher())
	h.Sync([]workspace.Listener{
		workspace.KeepAliveListener{Token: "tok", Every: time.Hour},
		workspace.CompileFinishedListener{},
	})
	require.ElementsMatch(t, []string{"keepalive:tok", workspace.CompileFinishedListener{}.Key()}, h.Active())

	h.Sync([]workspace.Listener{workspace.CompileFinishedListener{}})
	require.Equal(t, []string{workspace.CompileFinishedListener{}.Key()}, h.Active())

	h.Sync(nil)
	require.Empty(t, h.Active())
}

func TestHubKeepAlive(t *testing.T) {
	ch := newFakeChannel(true)
	h := newHub(t, ch, newFakeSearcher())
	h.Sync([]workspace.Listener{workspace.KeepAliveListener{Token: "tok", Every: 5 * time.Millisecond}})

	require.Equal(t, workspace.KeepAlive{}, nextEvent(t, h))
	ch.mu.Lock()
	defer ch.mu.Unlock()
	require.GreaterOrEqual(t, ch.pings, 1)
}

func TestHubCompileFinished(t *testing.T) {
	ch := newFakeChannel(true)
	h := newHub(t, ch, newFakeSearcher())
	h.Sync([]workspace.Listener{workspace.CompileFinishedListener{}})

	errs := []project.CompileError{{Title: "NAMING ERROR", Line: 3, Column: 7}}
	ch.compiled <- errs
	require.Equal(t, workspace.CompileFinished{Errors: errs}, nextEvent(t, h))
}

func TestHubConnectivity(t *testing.T) {
	h := newHub(t, newFakeChannel(true), newFakeSearcher())
	h.Sync([]workspace.Listener{workspace.AttachedListener{}})
	require.Equal(t, workspace.WorkspaceAttached{}, nextEvent(t, h))

	h2 := newHub(t, newFakeChannel(false), newFakeSearcher())
	h2.Sync([]workspace.Listener{workspace.DetachedListener{}})
	require.Equal(t, workspace.WorkspaceDetached{}, nextEvent(t, h2))
}

func TestHubCatalogListener(t *testing.T) {
	search := newFakeSearcher()
	h := newHub(t, newFakeChannel(true), search)
	h.Sync([]workspace.Listener{workspace.PaneListener{Kind: pane.KindPackages, Listener: pane.CatalogListener{}}})

	search.notify <- struct{}{}
	require.Equal(t, workspace.PaneMsg{Kind: pane.KindPackages, Msg: pane.CatalogRefreshed{}}, nextEvent(t, h))
}
