package workspace

import (
	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/workspace/pane"
)

// Status is the one-line message shown under the editor.
type Status struct {
	Text   string
	IsErr  bool
	Serial int
}

// State is everything the editor knows. Reduce returns a new State for
// every message; nothing else writes to it.
type State struct {
	Token     string
	Workspace Workspace
	Revision  RevisionRef
	Compile   CompileState
	Connected bool
	Pane      pane.Pane
	Settings  config.Editor
	Dirty     bool
	Saving    bool
	Status    Status
}

// New returns the state of a fresh session. The session starts detached; the
// channel's first attach event flips Connected.
func New(token string, settings config.Editor) State {
	return State{
		Token:     token,
		Workspace: DefaultWorkspace(),
		Revision:  NotAsked{},
		Compile:   Ready{},
		Pane:      pane.Hidden{},
		Settings:  settings.Normalize(),
	}
}

// Init returns the state and effects for a session opened at route.
func Init(token string, settings config.Editor, route Route) (State, []Effect) {
	return Reduce(New(token, settings), RouteChanged{Route: route})
}
