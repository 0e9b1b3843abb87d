package database

import (
	"context"
	"database/sql"

	"github.com/jask/codepad/internal/database/repository"
	"github.com/jask/codepad/internal/workspace/project"
)

var defaultCatalog = []project.Package{
	{Name: "core/base", Version: "1.0.5", Summary: "Core types, lists, strings and maybes"},
	{Name: "core/html", Version: "1.0.0", Summary: "Build HTML nodes and attributes"},
	{Name: "core/browser", Version: "1.0.2", Summary: "Run programs in the browser"},
	{Name: "core/http", Version: "2.0.0", Summary: "Make HTTP requests"},
	{Name: "core/json", Version: "1.1.3", Summary: "Encode and decode JSON values"},
	{Name: "core/time", Version: "1.0.0", Summary: "Work with POSIX times and time zones"},
	{Name: "core/random", Version: "1.0.0", Summary: "Generate random values"},
	{Name: "core/url", Version: "1.0.0", Summary: "Parse and build URLs"},
	{Name: "core/svg", Version: "1.0.1", Summary: "Draw scalable vector graphics"},
	{Name: "core/parser", Version: "1.1.0", Summary: "Write parsers with good error messages"},
	{Name: "community/dict-extra", Version: "2.4.0", Summary: "Convenience functions for dictionaries"},
	{Name: "community/list-extra", Version: "8.7.0", Summary: "Convenience functions for lists"},
	{Name: "community/markdown", Version: "7.0.1", Summary: "Render markdown to HTML"},
	{Name: "community/css", Version: "18.0.0", Summary: "Typed CSS in code"},
}

// SeedDefaults ensures the package catalog is not empty for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	n, err := repository.NewPackageRepo(db).Count(ctx)
	if err == nil && n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		repo := repository.NewPackageRepo(tx)
		for _, p := range defaultCatalog {
			if err := repo.Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
}
