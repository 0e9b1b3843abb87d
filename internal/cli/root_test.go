package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/database"
	"github.com/jask/codepad/internal/database/repository"
	"github.com/jask/codepad/internal/tui"
	"github.com/jask/codepad/internal/workspace"
	"github.com/jask/codepad/internal/workspace/project"
)

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "codepad.db")
	t.Setenv("CODEPAD_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("CODEPAD_DATABASE_PATH", dbPath)
	t.Setenv("CODEPAD_SERVER_URL", "ws://127.0.0.1:1/workspace")
	t.Setenv("CODEPAD_LOG_DIR", "")
	return dbPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func saveRevision(t *testing.T, dbPath string) project.Revision {
	t.Helper()
	db, err := database.Setup(dbPath)
	require.NoError(t, err)
	defer db.Close()
	rev, err := repository.NewRevisionRepo(db).Create(context.Background(), "Counter", project.Content{
		Code:     "main = 1",
		Packages: workspace.DefaultPackages(),
	})
	require.NoError(t, err)
	return rev
}

func stubProgram(t *testing.T) *workspace.State {
	t.Helper()
	var got workspace.State
	prev := runProgram
	runProgram = func(m tea.Model) error {
		got = m.(*tui.Model).State()
		return nil
	}
	t.Cleanup(func() { runProgram = prev })
	return &got
}

func TestRootOpensNewDocument(t *testing.T) {
	testEnv(t)
	got := stubProgram(t)
	_, err := run(t)
	require.NoError(t, err)
	require.Equal(t, workspace.NotAsked{}, got.Revision)
}

func TestRootOpensRevision(t *testing.T) {
	dbPath := testEnv(t)
	rev := saveRevision(t, dbPath)
	got := stubProgram(t)

	_, err := run(t, rev.ID.String())
	require.NoError(t, err)
	require.Equal(t, workspace.Loading{ID: rev.ID}, got.Revision)
}

func TestRouteArg(t *testing.T) {
	require.Equal(t, workspace.NewDocumentRoute(), routeArg(nil))
	require.Equal(t, workspace.NewDocumentRoute(), routeArg([]string{"/new"}))
	require.Equal(t, workspace.RouteNotFound, routeArg([]string{"nope"}).Kind)
}

func TestRevisionsListAndShow(t *testing.T) {
	dbPath := testEnv(t)
	rev := saveRevision(t, dbPath)

	out, err := run(t, "revisions", "list")
	require.NoError(t, err)
	require.Contains(t, out, rev.ID.String())
	require.Contains(t, out, "Counter")

	out, err = run(t, "revisions", "show", rev.ID.String())
	require.NoError(t, err)
	require.Contains(t, out, "main = 1")
	require.Contains(t, out, "core/html 1.0.0")

	_, err = run(t, "revisions", "show", "not-an-id")
	require.ErrorContains(t, err, "invalid revision id")
}

func TestPackagesAddAndSearch(t *testing.T) {
	testEnv(t)
	out, err := run(t, "packages", "add", "community/graph", "2.0.0", "--summary", "Graph layouts")
	require.NoError(t, err)
	require.Contains(t, out, "added community/graph 2.0.0")

	out, err = run(t, "packages", "search", "graph")
	require.NoError(t, err)
	require.Contains(t, out, "community/graph\t2.0.0\tGraph layouts")
}

func TestSessionTokenIsReused(t *testing.T) {
	testEnv(t)
	cfg, err := config.Load()
	require.NoError(t, err)

	first, err := sessionToken(cfg)
	require.NoError(t, err)
	second, err := sessionToken(cfg)
	require.NoError(t, err)
	require.Equal(t, first, second)

	cfg.Server.Token = "fixed"
	got, err := sessionToken(cfg)
	require.NoError(t, err)
	require.Equal(t, "fixed", got)
}

func TestTokenReset(t *testing.T) {
	testEnv(t)
	cfg, err := config.Load()
	require.NoError(t, err)

	first, err := sessionToken(cfg)
	require.NoError(t, err)

	out, err := run(t, "token", "reset")
	require.NoError(t, err)
	require.Contains(t, out, "forgot token for ws://127.0.0.1:1/workspace")

	second, err := sessionToken(cfg)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
