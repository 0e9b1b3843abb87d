package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/workspace"
	"github.com/jask/codepad/internal/workspace/pane"
	"github.com/jask/codepad/internal/workspace/project"
)

// RevisionStore persists revisions.
type RevisionStore interface {
	Get(ctx context.Context, id uuid.UUID) (project.Revision, error)
	Create(ctx context.Context, title string, content project.Content) (project.Revision, error)
}

// Channel is the live link to the workspace server.
type Channel interface {
	Compile(ctx context.Context, token string, content project.Content) error
	Format(ctx context.Context, code string) (string, error)
	Ping(ctx context.Context) error
	WaitConnected(ctx context.Context, want bool) error
	Compiled() <-chan []project.CompileError
}

// PackageSearcher backs the packages pane.
type PackageSearcher interface {
	Search(ctx context.Context, query string) ([]project.Package, error)
	Subscribe() (<-chan struct{}, func())
}

// Deps are the collaborators effects and listeners are executed against.
type Deps struct {
	Revisions    RevisionStore
	Channel      Channel
	Packages     PackageSearcher
	SaveSettings func(config.Editor) error
	Log          *slog.Logger
}

// navCheckMsg carries EnableNavigationCheck back into the program model.
type navCheckMsg struct {
	enabled bool
}

// Executor turns effects into tea commands. Every command reports back with
// a workspace message; failures become OperationFailed.
type Executor struct {
	ctx  context.Context
	deps Deps
	log  *slog.Logger
}

func NewExecutor(ctx context.Context, deps Deps) *Executor {
	return &Executor{ctx: ctx, deps: deps, log: deps.Log.With("component", "executor")}
}

// Cmds batches the commands for effs.
func (e *Executor) Cmds(effs []workspace.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effs))
	for _, eff := range effs {
		if cmd := e.Cmd(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Cmd builds the command for one effect. None yields nil.
func (e *Executor) Cmd(eff workspace.Effect) tea.Cmd {
	e.log.Debug("effect", "type", fmt.Sprintf("%T", eff))
	switch eff := eff.(type) {
	case workspace.StartCompile:
		return func() tea.Msg {
			if err := e.deps.Channel.Compile(e.ctx, eff.Token, eff.Content); err != nil {
				return e.failed(workspace.OpCompile, err)
			}
			return nil
		}

	case workspace.FormatCode:
		return func() tea.Msg {
			out, err := e.deps.Channel.Format(e.ctx, eff.Code)
			if err != nil {
				return e.failed(workspace.OpFormat, err)
			}
			return workspace.CodeFormatted{Original: eff.Code, Formatted: out}
		}

	case workspace.SaveSettings:
		return func() tea.Msg {
			if e.deps.SaveSettings == nil {
				return nil
			}
			if err := e.deps.SaveSettings(eff.Settings); err != nil {
				return e.failed(workspace.OpSettings, err)
			}
			return nil
		}

	case workspace.FetchRevision:
		return func() tea.Msg {
			rev, err := e.deps.Revisions.Get(e.ctx, eff.ID)
			if err != nil {
				return e.failed(workspace.OpFetch, err)
			}
			return workspace.RevisionLoaded{ID: eff.ID, Revision: rev}
		}

	case workspace.SaveRevision:
		return func() tea.Msg {
			rev, err := e.deps.Revisions.Create(e.ctx, eff.Title, eff.Content)
			if err != nil {
				return e.failed(workspace.OpSave, err)
			}
			return workspace.RevisionSaved{Revision: rev}
		}

	case workspace.Redirect:
		return func() tea.Msg { return workspace.RouteChanged{Route: eff.Route} }

	case workspace.EnableNavigationCheck:
		return func() tea.Msg { return navCheckMsg{enabled: eff.Enabled} }

	case workspace.Delay:
		then := eff.Then
		if then == nil {
			then = workspace.NoOp{}
		}
		return tea.Tick(eff.Duration, func(time.Time) tea.Msg { return then })

	case workspace.PaneEffect:
		return e.paneCmd(eff.Kind, eff.Effect)

	default:
		return nil
	}
}

func (e *Executor) paneCmd(kind pane.Kind, eff pane.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case pane.Debounce:
		return tea.Tick(eff.After, func(time.Time) tea.Msg {
			return workspace.PaneMsg{Kind: kind, Msg: pane.DebounceElapsed{Generation: eff.Generation}}
		})
	case pane.Search:
		return func() tea.Msg {
			results, err := e.deps.Packages.Search(e.ctx, eff.Query)
			if err != nil {
				return e.failed(workspace.OpSearch, err)
			}
			return workspace.PaneMsg{Kind: kind, Msg: pane.SearchCompleted{Generation: eff.Generation, Results: results}}
		}
	default:
		return nil
	}
}

func (e *Executor) failed(op string, err error) tea.Msg {
	e.log.Warn("operation failed", "op", op, "error", err)
	return workspace.OperationFailed{Op: op, Err: err}
}
