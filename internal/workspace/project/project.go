// Package project holds the plain data shared by the workspace core and its
// collaborators: packages, persisted revisions and compiler problems.
package project

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Package is a dependency selected for a document.
type Package struct {
	Name    string
	Version string
	Summary string
}

// Same reports whether two packages name the same dependency at the same version.
func (p Package) Same(o Package) bool {
	return p.Name == o.Name && p.Version == o.Version
}

// Content is the editable part of a document.
type Content struct {
	Code     string
	Markup   string
	Packages []Package
}

// Equal compares code, markup and the ordered package list. Summaries are
// catalog metadata and never make a document dirty.
func (c Content) Equal(o Content) bool {
	if c.Code != o.Code || c.Markup != o.Markup {
		return false
	}
	return slices.EqualFunc(c.Packages, o.Packages, Package.Same)
}

// Revision is an immutable, persisted snapshot of a document.
type Revision struct {
	ID        uuid.UUID
	Title     string
	Content   Content
	CreatedAt time.Time
}

// CompileError is one problem reported by the compiler.
type CompileError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}
