package workspace

import (
	"slices"

	"github.com/google/uuid"

	"github.com/jask/codepad/internal/workspace/project"
)

// RevisionRef describes how the workspace relates to a persisted revision.
// The variants are NotAsked, Loading, Replacing and Loaded. Only Loading and
// Replacing carry an outstanding fetch, and each carries exactly one id.
type RevisionRef interface {
	isRevisionRef()
}

// NotAsked means the workspace is a brand-new document.
type NotAsked struct{}

// Loading means a fetch for ID is outstanding and nothing is held yet.
type Loading struct {
	ID uuid.UUID
}

// Replacing means a fetch for ID is outstanding while Current is still displayed.
type Replacing struct {
	ID      uuid.UUID
	Current project.Revision
}

// Loaded means Revision is the baseline for dirty checks.
type Loaded struct {
	Revision project.Revision
}

func (NotAsked) isRevisionRef()  {}
func (Loading) isRevisionRef()   {}
func (Replacing) isRevisionRef() {}
func (Loaded) isRevisionRef()    {}

// FetchRequest asks the store for a revision.
type FetchRequest struct {
	ID uuid.UUID
}

// Transition moves the lifecycle for a route that names an existing
// revision. Any other route kind leaves the ref untouched; those are handled
// at the document level because they reset or redirect.
func Transition(current RevisionRef, route Route) (RevisionRef, *FetchRequest) {
	if route.Kind != RouteExisting {
		return current, nil
	}
	id := route.ID
	switch cur := current.(type) {
	case Loading:
		if cur.ID == id {
			return current, nil
		}
		return Loading{ID: id}, &FetchRequest{ID: id}
	case Replacing:
		if cur.ID == id {
			return current, nil
		}
		return Replacing{ID: id, Current: cur.Current}, &FetchRequest{ID: id}
	case Loaded:
		if cur.Revision.ID == id {
			return current, nil
		}
		return Replacing{ID: id, Current: cur.Revision}, &FetchRequest{ID: id}
	default:
		return Loading{ID: id}, &FetchRequest{ID: id}
	}
}

// Pending returns the id of the outstanding fetch, if any.
func Pending(ref RevisionRef) (uuid.UUID, bool) {
	switch r := ref.(type) {
	case Loading:
		return r.ID, true
	case Replacing:
		return r.ID, true
	default:
		return uuid.Nil, false
	}
}

// Held returns the revision currently on screen, if any.
func Held(ref RevisionRef) (project.Revision, bool) {
	switch r := ref.(type) {
	case Loaded:
		return r.Revision, true
	case Replacing:
		return r.Current, true
	default:
		return project.Revision{}, false
	}
}

// Complete folds a fetch result into the lifecycle. The result is accepted
// only when it answers the single outstanding fetch; anything else is stale.
func Complete(current RevisionRef, id uuid.UUID, rev project.Revision) (RevisionRef, bool) {
	pending, ok := Pending(current)
	if !ok || pending != id || rev.ID != id {
		return current, false
	}
	return Loaded{Revision: rev}, true
}

// Layout holds the pane split ratios, each in [0, 1].
type Layout struct {
	EditorRatio float64
	OutputRatio float64
}

// Workspace is the live editing surface.
type Workspace struct {
	ProjectName string
	Content     project.Content
	Layout      Layout
}

const (
	DefaultCode = `module Main exposing (main)

import Html exposing (text)


main =
    text "Hello, World!"
`
	DefaultMarkup = `<html>
<head>
  <style>
    /* you can style your program here */
  </style>
</head>
<body>
  <main></main>
  <script>
    var app = Main.init({ node: document.querySelector('main') })
    // you can use ports and stuff here
  </script>
</body>
</html>
`
	DefaultProjectName = "Untitled"
)

// DefaultPackages are installed in every blank document.
func DefaultPackages() []project.Package {
	return []project.Package{
		{Name: "core/base", Version: "1.0.5"},
		{Name: "core/html", Version: "1.0.0"},
		{Name: "core/browser", Version: "1.0.2"},
	}
}

// DefaultWorkspace returns a fresh, blank document.
func DefaultWorkspace() Workspace {
	return Workspace{
		ProjectName: DefaultProjectName,
		Content: project.Content{
			Code:     DefaultCode,
			Markup:   DefaultMarkup,
			Packages: DefaultPackages(),
		},
		Layout: Layout{EditorRatio: 0.5, OutputRatio: 0.5},
	}
}

// FromRevision builds a workspace whose content is exactly rev's. The layout
// is kept from prev so switching documents does not jump the panes around.
func FromRevision(rev project.Revision, prev Layout) Workspace {
	name := rev.Title
	if name == "" {
		name = DefaultProjectName
	}
	return Workspace{
		ProjectName: name,
		Content: project.Content{
			Code:     rev.Content.Code,
			Markup:   rev.Content.Markup,
			Packages: slices.Clone(rev.Content.Packages),
		},
		Layout: prev,
	}
}

// IsDirty reports whether the workspace differs from its baseline: the loaded
// revision when Loaded, the blank document otherwise.
func IsDirty(ref RevisionRef, ws Workspace) bool {
	if l, ok := ref.(Loaded); ok {
		return !ws.Content.Equal(l.Revision.Content)
	}
	return !ws.Content.Equal(DefaultWorkspace().Content)
}
