package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/codepad/internal/database"
	"github.com/jask/codepad/internal/database/repository"
	"github.com/jask/codepad/internal/workspace/project"
)

func setupRepos(t *testing.T) (*repository.RevisionRepo, *repository.PackageRepo) {
	t.Helper()
	db, err := database.Setup(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewRevisionRepo(db), repository.NewPackageRepo(db)
}

func TestRevisionCreateAndGet(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	revs, _ := setupRepos(t)

	content := project.Content{
		Code:   "main = 1",
		Markup: "<main></main>",
		Packages: []project.Package{
			{Name: "core/base", Version: "1.0.5"},
			{Name: "core/html", Version: "1.0.0"},
		},
	}
	created, err := revs.Create(ctx, "Counter", content)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := revs.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Counter", got.Title)
	require.True(t, content.Equal(got.Content), "content round trip")
	require.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)
}

func TestRevisionGetMissing(t *testing.T) {
	t.Parallel()

	revs, _ := setupRepos(t)
	_, err := revs.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRevisionList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	revs, _ := setupRepos(t)
	for _, title := range []string{"one", "two", "three"} {
		_, err := revs.Create(ctx, title, project.Content{Code: title})
		require.NoError(t, err)
	}

	list, err := revs.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "three", list[0].Title)
	require.Equal(t, "two", list[1].Title)
}

func TestPackageUpsertAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, pkgs := setupRepos(t)

	require.NoError(t, pkgs.Upsert(ctx, project.Package{Name: "b/two", Version: "1.0.0"}))
	require.NoError(t, pkgs.Upsert(ctx, project.Package{Name: "a/one", Version: "1.0.0", Summary: "first"}))
	require.NoError(t, pkgs.Upsert(ctx, project.Package{Name: "b/two", Version: "2.0.0"}))

	list, err := pkgs.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []project.Package{
		{Name: "a/one", Version: "1.0.0", Summary: "first"},
		{Name: "b/two", Version: "2.0.0"},
	}, list)

	n, err := pkgs.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestPackageVersionTracksWrites(t *testing.T) {
	ctx := context.Background()
	_, pkgs := setupRepos(t)

	empty, err := pkgs.Version(ctx)
	require.NoError(t, err)

	require.NoError(t, pkgs.Upsert(ctx, project.Package{Name: "a/one", Version: "1.0.0"}))
	added, err := pkgs.Version(ctx)
	require.NoError(t, err)
	require.NotEqual(t, empty, added)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, pkgs.Upsert(ctx, project.Package{Name: "a/one", Version: "1.1.0"}))
	bumped, err := pkgs.Version(ctx)
	require.NoError(t, err)
	require.NotEqual(t, added, bumped)

	again, err := pkgs.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, bumped, again)
}
