package workspace

import (
	"fmt"
	"slices"
	"time"

	"github.com/jask/codepad/internal/workspace/pane"
	"github.com/jask/codepad/internal/workspace/project"
)

// Operation names carried by OperationFailed.
const (
	OpFetch    = "fetch revision"
	OpSave     = "save revision"
	OpFormat   = "format code"
	OpCompile  = "compile"
	OpSettings = "save settings"
	OpSearch   = "search packages"
)

// StatusTTL is how long a status message stays up.
const StatusTTL = 5 * time.Second

// Pane ratios are clamped so no pane can be dragged shut.
const (
	minRatio = 0.1
	maxRatio = 0.9
)

// Reduce folds one message into the state. It is total: unknown or stale
// messages return the state unchanged and no effects.
func Reduce(s State, msg Msg) (State, []Effect) {
	if s.Pane == nil {
		s.Pane = pane.Hidden{}
	}
	switch msg := msg.(type) {
	case NoOp, KeepAlive:
		return s, nil

	case RouteChanged:
		return reduceRoute(s, msg.Route)

	case RevisionLoaded:
		ref, ok := Complete(s.Revision, msg.ID, msg.Revision)
		if !ok {
			return s, nil
		}
		s.Revision = ref
		s.Workspace = FromRevision(msg.Revision, s.Workspace.Layout)
		return s, Batch(s.refreshDirty())

	case SaveRequested:
		if s.Saving {
			return s, nil
		}
		// the workspace is about to be replaced by the pending fetch
		if _, pending := Pending(s.Revision); pending {
			var eff Effect
			s, eff = s.withStatus("Still loading, nothing saved", false)
			return s, Batch(eff)
		}
		if _, loaded := s.Revision.(Loaded); loaded && !s.Dirty {
			var eff Effect
			s, eff = s.withStatus("No changes to save", false)
			return s, Batch(eff)
		}
		s.Saving = true
		return s, Batch(SaveRevision{
			Token:   s.Token,
			Title:   s.Workspace.ProjectName,
			Content: cloneContent(s.Workspace.Content),
		})

	case RevisionSaved:
		// the user navigated elsewhere while the save was in flight
		if !s.Saving {
			return s, nil
		}
		s.Saving = false
		s.Revision = Loaded{Revision: msg.Revision}
		nav := s.refreshDirty()
		var status Effect
		s, status = s.withStatus("Saved", false)
		return s, Batch(nav, status, Redirect{Route: ExistingRoute(msg.Revision.ID)})

	case CodeChanged:
		if msg.Code == s.Workspace.Content.Code {
			return s, nil
		}
		s.Workspace.Content.Code = msg.Code
		return s, Batch(s.refreshDirty())

	case MarkupChanged:
		if msg.Markup == s.Workspace.Content.Markup {
			return s, nil
		}
		s.Workspace.Content.Markup = msg.Markup
		return s, Batch(s.refreshDirty())

	case ProjectNameChanged:
		s.Workspace.ProjectName = msg.Name
		return s, nil

	case PackageInstalled:
		s.Workspace.Content.Packages = installPackage(s.Workspace.Content.Packages, msg.Package)
		var status Effect
		s, status = s.withStatus("Installed "+msg.Package.Name, false)
		return s, Batch(s.refreshDirty(), status)

	case PackageRemoved:
		pkgs := slices.DeleteFunc(slices.Clone(s.Workspace.Content.Packages), func(p project.Package) bool {
			return p.Name == msg.Name
		})
		if len(pkgs) == len(s.Workspace.Content.Packages) {
			return s, nil
		}
		s.Workspace.Content.Packages = pkgs
		return s, Batch(s.refreshDirty())

	case CompileRequested:
		s.Compile = Compiling{}
		return s, Batch(StartCompile{Token: s.Token, Content: cloneContent(s.Workspace.Content)})

	case CompileFinished:
		s.Compile = CompileFinishedState(msg.Errors)
		return s, nil

	case FormatRequested:
		return s, Batch(FormatCode{Code: s.Workspace.Content.Code})

	case CodeFormatted:
		// the user kept typing while the formatter ran
		if msg.Original != s.Workspace.Content.Code {
			return s, nil
		}
		s.Workspace.Content.Code = msg.Formatted
		return s, Batch(s.refreshDirty())

	case SettingsChanged:
		s.Settings = msg.Settings.Normalize()
		return s, Batch(SaveSettings{Token: s.Token, Settings: s.Settings})

	case PaneResized:
		r := min(max(msg.Ratio, minRatio), maxRatio)
		switch msg.Split {
		case SplitEditor:
			s.Workspace.Layout.EditorRatio = r
		case SplitOutput:
			s.Workspace.Layout.OutputRatio = r
		}
		return s, nil

	case PaneOpened:
		if msg.Kind == s.Pane.Kind() {
			s.Pane = pane.Hidden{}
			return s, nil
		}
		s.Pane = pane.Open(msg.Kind, s.Settings)
		return s, nil

	case PaneMsg:
		return reducePane(s, msg)

	case WorkspaceAttached:
		s.Connected = true
		return s, nil

	case WorkspaceDetached:
		s.Connected = false
		return s, nil

	case OperationFailed:
		if msg.Op == OpSave {
			s.Saving = false
		}
		text := msg.Op + " failed"
		if msg.Err != nil {
			text = fmt.Sprintf("%s failed: %v", msg.Op, msg.Err)
		}
		var status Effect
		s, status = s.withStatus(text, true)
		return s, Batch(status)

	case StatusExpired:
		if msg.Serial == s.Status.Serial {
			s.Status.Text = ""
			s.Status.IsErr = false
		}
		return s, nil

	default:
		return s, nil
	}
}

func reduceRoute(s State, route Route) (State, []Effect) {
	switch route.Kind {
	case RouteNew:
		if _, ok := s.Revision.(NotAsked); ok {
			return s, nil
		}
		s.Revision = NotAsked{}
		s.Workspace = DefaultWorkspace()
		s.Saving = false
		return s, Batch(s.refreshDirty())

	case RouteNotFound:
		if rev, ok := Held(s.Revision); ok {
			return s, Batch(Redirect{Route: ExistingRoute(rev.ID)})
		}
		return s, Batch(Redirect{Route: NewDocumentRoute()})

	default:
		ref, fetch := Transition(s.Revision, route)
		if fetch == nil {
			return s, nil
		}
		s.Revision = ref
		s.Saving = false
		return s, Batch(FetchRevision{ID: fetch.ID})
	}
}

func reducePane(s State, msg PaneMsg) (State, []Effect) {
	// completions for a pane that has since been swapped out
	if msg.Kind != s.Pane.Kind() {
		return s, nil
	}
	next, eff := s.Pane.Update(msg.Msg)
	s.Pane = next
	switch eff := eff.(type) {
	case nil, pane.None:
		return s, nil
	case pane.InstallPackage:
		return Reduce(s, PackageInstalled{Package: eff.Package})
	case pane.ApplySettings:
		return Reduce(s, SettingsChanged{Settings: eff.Settings})
	default:
		return s, Batch(PaneEffect{Kind: msg.Kind, Effect: eff})
	}
}

// refreshDirty recomputes Dirty and asks for the navigation guard to follow
// it when it flips.
func (s *State) refreshDirty() Effect {
	dirty := IsDirty(s.Revision, s.Workspace)
	if dirty == s.Dirty {
		return None{}
	}
	s.Dirty = dirty
	return EnableNavigationCheck{Enabled: dirty}
}

func (s State) withStatus(text string, isErr bool) (State, Effect) {
	s.Status = Status{Text: text, IsErr: isErr, Serial: s.Status.Serial + 1}
	return s, Delay{Duration: StatusTTL, Then: StatusExpired{Serial: s.Status.Serial}}
}

// installPackage adds pkg or replaces the version already present under its name.
func installPackage(pkgs []project.Package, pkg project.Package) []project.Package {
	out := slices.Clone(pkgs)
	if i := slices.IndexFunc(out, func(p project.Package) bool { return p.Name == pkg.Name }); i >= 0 {
		out[i] = pkg
		return out
	}
	return append(out, pkg)
}

func cloneContent(c project.Content) project.Content {
	c.Packages = slices.Clone(c.Packages)
	return c
}
