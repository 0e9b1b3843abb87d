package tui

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/workspace"
	"github.com/jask/codepad/internal/workspace/pane"
	"github.com/jask/codepad/internal/workspace/project"
)

func newExecutor(t *testing.T) (*Executor, *fakeStore, *fakeChannel) {
	t.Helper()
	store, ch := newFakeStore(), newFakeChannel(true)
	search := newFakeSearcher(project.Package{Name: "core/json", Version: "1.1.3"})
	return NewExecutor(context.Background(), testDeps(store, ch, search)), store, ch
}

func TestExecutorFetchRevision(t *testing.T) {
	e, store, _ := newExecutor(t)
	rev, err := store.Create(context.Background(), "t", project.Content{Code: "main = 1"})
	require.NoError(t, err)

	msg := runCmd(t, e.Cmd(workspace.FetchRevision{ID: rev.ID}))
	require.Equal(t, workspace.RevisionLoaded{ID: rev.ID, Revision: rev}, msg)

	msg = runCmd(t, e.Cmd(workspace.FetchRevision{ID: uuid.New()}))
	failed, ok := msg.(workspace.OperationFailed)
	require.True(t, ok)
	require.Equal(t, workspace.OpFetch, failed.Op)
	require.ErrorIs(t, failed.Err, errBoom)
}

func TestExecutorSaveRevision(t *testing.T) {
	e, store, _ := newExecutor(t)
	content := project.Content{Code: "main = 2"}
	msg := runCmd(t, e.Cmd(workspace.SaveRevision{Token: "tok", Title: "Demo", Content: content}))

	saved, ok := msg.(workspace.RevisionSaved)
	require.True(t, ok)
	require.Equal(t, "Demo", saved.Revision.Title)
	got, err := store.Get(context.Background(), saved.Revision.ID)
	require.NoError(t, err)
	require.Equal(t, content, got.Content)
}

func TestExecutorCompile(t *testing.T) {
	e, _, ch := newExecutor(t)
	content := project.Content{Code: "main = 3"}
	require.Nil(t, runCmd(t, e.Cmd(workspace.StartCompile{Token: "tok", Content: content})))
	require.Equal(t, []project.Content{content}, ch.compiles)

	ch.compileErr = errBoom
	msg := runCmd(t, e.Cmd(workspace.StartCompile{Token: "tok", Content: content}))
	require.Equal(t, workspace.OperationFailed{Op: workspace.OpCompile, Err: errBoom}, msg)
}

func TestExecutorFormat(t *testing.T) {
	e, _, _ := newExecutor(t)
	msg := runCmd(t, e.Cmd(workspace.FormatCode{Code: "x"}))
	require.Equal(t, workspace.CodeFormatted{Original: "x", Formatted: "formatted:x"}, msg)
}

func TestExecutorSaveSettings(t *testing.T) {
	store, ch := newFakeStore(), newFakeChannel(true)
	deps := testDeps(store, ch, newFakeSearcher())
	var saved config.Editor
	deps.SaveSettings = func(ed config.Editor) error {
		saved = ed
		return nil
	}
	e := NewExecutor(context.Background(), deps)
	want := config.Editor{FontSize: 16, Theme: "light"}
	require.Nil(t, runCmd(t, e.Cmd(workspace.SaveSettings{Token: "tok", Settings: want})))
	require.Equal(t, want, saved)

	deps.SaveSettings = func(config.Editor) error { return errBoom }
	e = NewExecutor(context.Background(), deps)
	msg := runCmd(t, e.Cmd(workspace.SaveSettings{Settings: want}))
	require.Equal(t, workspace.OperationFailed{Op: workspace.OpSettings, Err: errBoom}, msg)
}

func TestExecutorRoutingEffects(t *testing.T) {
	e, _, _ := newExecutor(t)
	route := workspace.NewDocumentRoute()
	require.Equal(t, workspace.RouteChanged{Route: route}, runCmd(t, e.Cmd(workspace.Redirect{Route: route})))
	require.Equal(t, navCheckMsg{enabled: true}, runCmd(t, e.Cmd(workspace.EnableNavigationCheck{Enabled: true})))
}

func TestExecutorDelay(t *testing.T) {
	e, _, _ := newExecutor(t)
	require.Equal(t, workspace.NoOp{}, runCmd(t, e.Cmd(workspace.Delay{Duration: time.Millisecond})))
	then := workspace.StatusExpired{Serial: 4}
	require.Equal(t, then, runCmd(t, e.Cmd(workspace.Delay{Duration: time.Millisecond, Then: then})))
}

func TestExecutorPaneEffects(t *testing.T) {
	e, _, _ := newExecutor(t)

	msg := runCmd(t, e.Cmd(workspace.PaneEffect{Kind: pane.KindPackages, Effect: pane.Debounce{Generation: 3, After: time.Millisecond}}))
	require.Equal(t, workspace.PaneMsg{Kind: pane.KindPackages, Msg: pane.DebounceElapsed{Generation: 3}}, msg)

	msg = runCmd(t, e.Cmd(workspace.PaneEffect{Kind: pane.KindPackages, Effect: pane.Search{Query: "json", Generation: 3}}))
	require.Equal(t, workspace.PaneMsg{Kind: pane.KindPackages, Msg: pane.SearchCompleted{
		Generation: 3,
		Results:    []project.Package{{Name: "core/json", Version: "1.1.3"}},
	}}, msg)

	msg = runCmd(t, e.Cmd(workspace.PaneEffect{Kind: pane.KindPackages, Effect: pane.Search{Query: "fail", Generation: 4}}))
	require.Equal(t, workspace.OperationFailed{Op: workspace.OpSearch, Err: errBoom}, msg)
}

func TestExecutorNone(t *testing.T) {
	e, _, _ := newExecutor(t)
	require.Nil(t, e.Cmd(workspace.None{}))
	require.Nil(t, e.Cmds(nil))
}
