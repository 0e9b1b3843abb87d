// Package pane implements the side-panel tools of the editor. The parent
// workspace only sees the Pane interface; each variant owns its invariants.
package pane

import (
	"time"

	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/workspace/project"
)

// Kind names a pane variant.
type Kind int

const (
	KindHidden Kind = iota
	KindPackages
	KindSettings
)

func (k Kind) String() string {
	switch k {
	case KindPackages:
		return "packages"
	case KindSettings:
		return "settings"
	default:
		return "hidden"
	}
}

// Pane is a delegated sub-model. The variant set is closed: Hidden,
// Packages and Settings.
type Pane interface {
	Kind() Kind
	Update(msg Msg) (Pane, Effect)
	Subscriptions() []Listener
	sealed()
}

// Msg is a message addressed to a pane.
type Msg interface{ paneMsg() }

// Effect is a side effect requested by a pane. InstallPackage and
// ApplySettings are handed to the parent workspace; the rest go to the driver.
type Effect interface{ paneEffect() }

// Listener is an event source a pane wants to hear from.
type Listener interface{ Key() string }

// Open creates a fresh pane of the given kind.
func Open(kind Kind, settings config.Editor) Pane {
	switch kind {
	case KindPackages:
		return Packages{}
	case KindSettings:
		return Settings{Saved: settings, Draft: settings}
	default:
		return Hidden{}
	}
}

// Effects.

type None struct{}

// Debounce asks for DebounceElapsed{Generation} after the delay.
type Debounce struct {
	Generation int
	After      time.Duration
}

// Search asks the package catalog for Query.
type Search struct {
	Query      string
	Generation int
}

// InstallPackage asks the parent to add a package to the document.
type InstallPackage struct {
	Package project.Package
}

// ApplySettings asks the parent to adopt and persist editor settings.
type ApplySettings struct {
	Settings config.Editor
}

func (None) paneEffect()           {}
func (Debounce) paneEffect()       {}
func (Search) paneEffect()         {}
func (InstallPackage) paneEffect() {}
func (ApplySettings) paneEffect()  {}

// Hidden is the closed pane. It ignores every message.
type Hidden struct{}

func (Hidden) Kind() Kind                  { return KindHidden }
func (h Hidden) Update(Msg) (Pane, Effect) { return h, None{} }
func (Hidden) Subscriptions() []Listener   { return nil }
func (Hidden) sealed()                     {}
