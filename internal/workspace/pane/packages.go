package pane

import (
	"strings"
	"time"

	"github.com/jask/codepad/internal/workspace/project"
)

// SearchDelay is how long the query must stay unchanged before searching.
const SearchDelay = 250 * time.Millisecond

// Packages is the package search pane.
//
// Every query edit bumps Generation. Timer and search completions carry the
// generation they were issued for and are ignored once it has moved on, so
// only the latest query ever lands in Results.
type Packages struct {
	Query      string
	Generation int
	Searching  bool
	Results    []project.Package
	Cursor     int
}

type QueryChanged struct{ Query string }

type DebounceElapsed struct{ Generation int }

type SearchCompleted struct {
	Generation int
	Results    []project.Package
}

// CatalogRefreshed fires when the package catalog changes underneath an open search.
type CatalogRefreshed struct{}

type CursorMoved struct{ Delta int }

// InstallSelected installs the package under the cursor.
type InstallSelected struct{}

func (QueryChanged) paneMsg()     {}
func (DebounceElapsed) paneMsg()  {}
func (SearchCompleted) paneMsg()  {}
func (CatalogRefreshed) paneMsg() {}
func (CursorMoved) paneMsg()      {}
func (InstallSelected) paneMsg()  {}

// CatalogListener listens for catalog refreshes.
type CatalogListener struct{}

func (CatalogListener) Key() string { return "pane.packages.catalog" }

func (Packages) Kind() Kind { return KindPackages }
func (Packages) sealed()    {}

func (p Packages) Update(msg Msg) (Pane, Effect) {
	switch msg := msg.(type) {
	case QueryChanged:
		if msg.Query == p.Query {
			return p, None{}
		}
		p.Query = msg.Query
		p.Generation++
		p.Cursor = 0
		if strings.TrimSpace(p.Query) == "" {
			p.Searching = false
			p.Results = nil
			return p, None{}
		}
		p.Searching = true
		return p, Debounce{Generation: p.Generation, After: SearchDelay}
	case DebounceElapsed:
		if msg.Generation != p.Generation || !p.Searching {
			return p, None{}
		}
		return p, Search{Query: p.Query, Generation: p.Generation}
	case SearchCompleted:
		if msg.Generation != p.Generation {
			return p, None{}
		}
		p.Searching = false
		p.Results = msg.Results
		if p.Cursor >= len(p.Results) {
			p.Cursor = 0
		}
		return p, None{}
	case CatalogRefreshed:
		if strings.TrimSpace(p.Query) == "" {
			return p, None{}
		}
		p.Generation++
		p.Searching = true
		return p, Search{Query: p.Query, Generation: p.Generation}
	case CursorMoved:
		if len(p.Results) == 0 {
			return p, None{}
		}
		p.Cursor = (p.Cursor + msg.Delta + len(p.Results)) % len(p.Results)
		return p, None{}
	case InstallSelected:
		if p.Cursor < 0 || p.Cursor >= len(p.Results) {
			return p, None{}
		}
		return p, InstallPackage{Package: p.Results[p.Cursor]}
	default:
		return p, None{}
	}
}

// Subscriptions listens for catalog refreshes only while a query is active.
func (p Packages) Subscriptions() []Listener {
	if strings.TrimSpace(p.Query) == "" {
		return nil
	}
	return []Listener{CatalogListener{}}
}
