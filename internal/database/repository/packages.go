package repository

import (
	"context"
	"fmt"

	"github.com/jask/codepad/internal/workspace/project"
)

// PackageRepo handles the searchable package catalog.
type PackageRepo struct {
	db querier
}

// NewPackageRepo accepts a *sql.DB or a *sql.Tx.
func NewPackageRepo(db querier) *PackageRepo { return &PackageRepo{db: db} }

func (r *PackageRepo) Upsert(ctx context.Context, p project.Package) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO packages(name, version, summary, updated_at) VALUES (?, ?, ?, strftime('%Y-%m-%d %H:%M:%f', 'now'))
	ON CONFLICT(name) DO UPDATE SET
	 version=excluded.version,
	 summary=excluded.summary,
	 updated_at=strftime('%Y-%m-%d %H:%M:%f', 'now');
	`, p.Name, p.Version, p.Summary)
	return err
}

func (r *PackageRepo) List(ctx context.Context) ([]project.Package, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, version, summary FROM packages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []project.Package
	for rows.Next() {
		var p project.Package
		if err := rows.Scan(&p.Name, &p.Version, &p.Summary); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PackageRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM packages`).Scan(&n)
	return n, err
}

// Version fingerprints the table so pollers can tell when any writer,
// including another process, changed it.
func (r *PackageRepo) Version(ctx context.Context) (string, error) {
	var (
		n    int
		last string
	)
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(CAST(MAX(updated_at) AS TEXT), '') FROM packages`).Scan(&n, &last)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d@%s", n, last), nil
}
