package workspace

import (
	"time"

	"github.com/google/uuid"

	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/workspace/pane"
	"github.com/jask/codepad/internal/workspace/project"
)

// Effect is a side effect the reducer wants performed. Reduce never performs
// I/O itself; a driver executes effects and feeds their completions back in
// as messages.
type Effect interface {
	isEffect()
}

// None is the explicit empty effect.
type None struct{}

// StartCompile completes through the compile-finished listener.
type StartCompile struct {
	Token   string
	Content project.Content
}

// FormatCode completes with CodeFormatted.
type FormatCode struct {
	Code string
}

type SaveSettings struct {
	Token    string
	Settings config.Editor
}

// FetchRevision completes with RevisionLoaded.
type FetchRevision struct {
	ID uuid.UUID
}

// SaveRevision completes with RevisionSaved.
type SaveRevision struct {
	Token   string
	Title   string
	Content project.Content
}

// Redirect moves the editor to a new route, which comes back as RouteChanged.
type Redirect struct {
	Route Route
}

// EnableNavigationCheck turns the leave-with-unsaved-changes guard on or off.
type EnableNavigationCheck struct {
	Enabled bool
}

// Delay delivers Then after Duration. A nil Then delivers NoOp.
type Delay struct {
	Duration time.Duration
	Then     Msg
}

// PaneEffect is an effect requested by the pane of the given kind. Its
// completion must come back as PaneMsg with the same kind.
type PaneEffect struct {
	Kind   pane.Kind
	Effect pane.Effect
}

func (None) isEffect()                  {}
func (StartCompile) isEffect()          {}
func (FormatCode) isEffect()            {}
func (SaveSettings) isEffect()          {}
func (FetchRevision) isEffect()         {}
func (SaveRevision) isEffect()          {}
func (Redirect) isEffect()              {}
func (EnableNavigationCheck) isEffect() {}
func (Delay) isEffect()                 {}
func (PaneEffect) isEffect()            {}

// Batch collects effects, dropping None and nils.
func Batch(effs ...Effect) []Effect {
	out := make([]Effect, 0, len(effs))
	for _, e := range effs {
		if e == nil {
			continue
		}
		if _, ok := e.(None); ok {
			continue
		}
		out = append(out, e)
	}
	return out
}
