package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/codepad/internal/workspace/project"
)

// RevisionRepo stores immutable document revisions.
type RevisionRepo struct {
	db *sql.DB
}

func NewRevisionRepo(db *sql.DB) *RevisionRepo { return &RevisionRepo{db: db} }

// Create persists content as a new revision with a fresh id.
func (r *RevisionRepo) Create(ctx context.Context, title string, content project.Content) (project.Revision, error) {
	rev := project.Revision{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return project.Revision{}, err
	}
	_, err = tx.ExecContext(ctx, `
	INSERT INTO revisions(id, title, code, markup, created_at)
	VALUES (?, ?, ?, ?, ?);
	`, rev.ID.String(), rev.Title, content.Code, content.Markup, rev.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		return project.Revision{}, fmt.Errorf("insert revision: %w", err)
	}
	for i, p := range content.Packages {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO revision_packages(revision_id, position, name, version)
		VALUES (?, ?, ?, ?);
		`, rev.ID.String(), i, p.Name, p.Version)
		if err != nil {
			_ = tx.Rollback()
			return project.Revision{}, fmt.Errorf("insert revision package: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return project.Revision{}, err
	}
	return rev, nil
}

// Get loads a revision. A missing id yields ErrNotFound.
func (r *RevisionRepo) Get(ctx context.Context, id uuid.UUID) (project.Revision, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, code, markup, created_at FROM revisions WHERE id = ?`, id.String())
	rev, err := scanRevision(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return project.Revision{}, fmt.Errorf("revision %s: %w", id, ErrNotFound)
		}
		return project.Revision{}, err
	}
	pkgs, err := r.fetchPackages(ctx, rev.ID)
	if err != nil {
		return project.Revision{}, err
	}
	rev.Content.Packages = pkgs
	return rev, nil
}

// List returns the newest revisions first, without their packages.
func (r *RevisionRepo) List(ctx context.Context, limit int) ([]project.Revision, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, code, markup, created_at FROM revisions
	ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []project.Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *RevisionRepo) fetchPackages(ctx context.Context, id uuid.UUID) ([]project.Package, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT name, version FROM revision_packages WHERE revision_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []project.Package
	for rows.Next() {
		var p project.Package
		if err := rows.Scan(&p.Name, &p.Version); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(s rowScanner) (project.Revision, error) {
	var (
		rev project.Revision
		id  string
	)
	if err := s.Scan(&id, &rev.Title, &rev.Content.Code, &rev.Content.Markup, &rev.CreatedAt); err != nil {
		return project.Revision{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return project.Revision{}, fmt.Errorf("parse revision id %q: %w", id, err)
	}
	rev.ID = parsed
	return rev, nil
}
