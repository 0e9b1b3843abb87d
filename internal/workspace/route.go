package workspace

import (
	"strings"

	"github.com/google/uuid"
)

// RouteKind distinguishes the three kinds of location the editor can be at.
type RouteKind int

const (
	RouteNew RouteKind = iota
	RouteExisting
	RouteNotFound
)

// Route is a parsed editor location.
type Route struct {
	Kind RouteKind
	ID   uuid.UUID
	// Raw is the unparsed path for RouteNotFound.
	Raw string
}

const newPath = "/new"

func NewDocumentRoute() Route { return Route{Kind: RouteNew} }

func ExistingRoute(id uuid.UUID) Route { return Route{Kind: RouteExisting, ID: id} }

func NotFoundRoute(raw string) Route { return Route{Kind: RouteNotFound, Raw: raw} }

// ParseRoute maps a path onto a Route. "/" and "/new" open a blank document,
// "/<uuid>" names a revision and anything else is not found.
func ParseRoute(path string) Route {
	p := strings.TrimSpace(path)
	if p == "" || p == "/" || p == newPath {
		return NewDocumentRoute()
	}
	seg := strings.Trim(p, "/")
	if strings.Contains(seg, "/") {
		return NotFoundRoute(path)
	}
	id, err := uuid.Parse(seg)
	if err != nil || id == uuid.Nil {
		return NotFoundRoute(path)
	}
	return ExistingRoute(id)
}

// Path renders the canonical path for the route.
func (r Route) Path() string {
	switch r.Kind {
	case RouteExisting:
		return "/" + r.ID.String()
	case RouteNotFound:
		return r.Raw
	default:
		return newPath
	}
}

func (r Route) String() string { return r.Path() }
