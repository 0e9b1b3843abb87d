// Package tui runs the editor state machine inside a bubbletea program. The
// workspace package decides; this package performs the effects it asks for,
// keeps listeners running, and draws the result.
package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/workspace"
	"github.com/jask/codepad/internal/workspace/pane"
)

const resizeStep = 0.05

type focus int

const (
	focusCode focus = iota
	focusMarkup
	focusPane
)

type promptKind int

const (
	promptNone promptKind = iota
	promptLocation
	promptRename
)

// Model is the bubbletea model around workspace.State.
type Model struct {
	state workspace.State
	exec  *Executor
	hub   *Hub
	keys  keyMap

	code   textarea.Model
	markup textarea.Model
	query  textinput.Model
	input  textinput.Model

	focus    focus
	prompt   promptKind
	navCheck bool
	// pendingNav is a navigation waiting for the user to confirm dropping
	// unsaved work. quitting uses the same confirmation.
	pendingNav *workspace.Route
	confirming bool
	quitting   bool

	initial []workspace.Effect
	width   int
	height  int
}

// NewModel builds the model for a session opened at route.
func NewModel(ctx context.Context, deps Deps, token string, settings config.Editor, route workspace.Route) *Model {
	code := textarea.New()
	code.ShowLineNumbers = true
	code.CharLimit = 0
	code.MaxHeight = 0
	markup := textarea.New()
	markup.CharLimit = 0
	markup.MaxHeight = 0
	query := textinput.New()
	query.Placeholder = "search packages"
	input := textinput.New()

	m := &Model{
		exec:   NewExecutor(ctx, deps),
		hub:    NewHub(ctx, deps),
		keys:   defaultKeys(),
		code:   code,
		markup: markup,
		query:  query,
		input:  input,
		width:  100,
		height: 30,
	}
	m.state, m.initial = workspace.Init(token, settings, route)
	m.syncEditors()
	m.hub.Sync(workspace.Subscriptions(m.state))
	m.code.Focus()
	return m
}

// State returns the current workspace state.
func (m *Model) State() workspace.State { return m.state }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.exec.Cmds(m.initial), m.hub.Wait(), textarea.Blink)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case hubMsg:
		return m, tea.Batch(m.apply(msg.msg), m.hub.Wait())
	case navCheckMsg:
		m.navCheck = msg.enabled
		return m, nil
	case workspace.Msg:
		return m, m.apply(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// apply runs one message through the reducer and performs what it returns.
func (m *Model) apply(msg workspace.Msg) tea.Cmd {
	var effs []workspace.Effect
	m.state, effs = workspace.Reduce(m.state, msg)
	m.syncEditors()
	m.hub.Sync(workspace.Subscriptions(m.state))
	if m.focus == focusPane && m.state.Pane.Kind() == pane.KindHidden {
		m.setFocus(focusCode)
	}
	// the guard must be armed before the next key is read, so it is not
	// round-tripped through the program like the other effects
	effs = slices.DeleteFunc(effs, func(eff workspace.Effect) bool {
		nc, ok := eff.(workspace.EnableNavigationCheck)
		if ok {
			m.navCheck = nc.Enabled
		}
		return ok
	})
	return m.exec.Cmds(effs)
}

// syncEditors copies state into the widgets when the reducer changed it, as
// it does on loads and formatting.
func (m *Model) syncEditors() {
	c := m.state.Workspace.Content
	if m.code.Value() != c.Code {
		m.code.SetValue(c.Code)
	}
	if m.markup.Value() != c.Markup {
		m.markup.SetValue(c.Markup)
	}
	if p, ok := m.state.Pane.(pane.Packages); ok && m.query.Value() != p.Query {
		m.query.SetValue(p.Query)
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.code.Blur()
	m.markup.Blur()
	m.query.Blur()
	switch f {
	case focusCode:
		m.code.Focus()
	case focusMarkup:
		m.markup.Focus()
	case focusPane:
		if m.state.Pane.Kind() == pane.KindPackages {
			m.query.Focus()
		}
	}
}

func (m *Model) cycleFocus() {
	next := (m.focus + 1) % 3
	if next == focusPane && m.state.Pane.Kind() == pane.KindHidden {
		next = focusCode
	}
	m.setFocus(next)
}

// navigate changes route, asking first when there is unsaved work.
func (m *Model) navigate(route workspace.Route) tea.Cmd {
	if m.navCheck {
		m.pendingNav = &route
		m.confirming = true
		return nil
	}
	return m.apply(workspace.RouteChanged{Route: route})
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.navCheck && !m.confirming {
		m.confirming = true
		m.pendingNav = nil
		return m, nil
	}
	m.quitting = true
	m.hub.Stop()
	return m, tea.Quit
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		return m.handleConfirm(msg)
	}
	if m.prompt != promptNone {
		return m.handlePrompt(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Compile):
		return m, m.apply(workspace.CompileRequested{})
	case key.Matches(msg, m.keys.Save):
		return m, m.apply(workspace.SaveRequested{})
	case key.Matches(msg, m.keys.Format):
		return m, m.apply(workspace.FormatRequested{})
	case key.Matches(msg, m.keys.Packages):
		cmd := m.apply(workspace.PaneOpened{Kind: pane.KindPackages})
		if m.state.Pane.Kind() == pane.KindPackages {
			m.setFocus(focusPane)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Settings):
		cmd := m.apply(workspace.PaneOpened{Kind: pane.KindSettings})
		if m.state.Pane.Kind() == pane.KindSettings {
			m.setFocus(focusPane)
		}
		return m, cmd
	case key.Matches(msg, m.keys.NewDoc):
		return m, m.navigate(workspace.NewDocumentRoute())
	case key.Matches(msg, m.keys.Location):
		m.openPrompt(promptLocation, m.state.Revision)
		return m, nil
	case key.Matches(msg, m.keys.Rename):
		m.openPrompt(promptRename, nil)
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.cycleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Narrower):
		return m, m.resizeBy(workspace.SplitEditor, -resizeStep)
	case key.Matches(msg, m.keys.Wider):
		return m, m.resizeBy(workspace.SplitEditor, resizeStep)
	case key.Matches(msg, m.keys.Shorter):
		return m, m.resizeBy(workspace.SplitOutput, -resizeStep)
	case key.Matches(msg, m.keys.Taller):
		return m, m.resizeBy(workspace.SplitOutput, resizeStep)
	}

	switch m.focus {
	case focusPane:
		return m.handlePaneKey(msg)
	case focusMarkup:
		var cmd tea.Cmd
		m.markup, cmd = m.markup.Update(msg)
		if v := m.markup.Value(); v != m.state.Workspace.Content.Markup {
			return m, tea.Batch(cmd, m.apply(workspace.MarkupChanged{Markup: v}))
		}
		return m, cmd
	default:
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		if v := m.code.Value(); v != m.state.Workspace.Content.Code {
			return m, tea.Batch(cmd, m.apply(workspace.CodeChanged{Code: v}))
		}
		return m, cmd
	}
}

func (m *Model) resizeBy(split workspace.Split, delta float64) tea.Cmd {
	l := m.state.Workspace.Layout
	r := l.EditorRatio
	if split == workspace.SplitOutput {
		r = l.OutputRatio
	}
	cmd := m.apply(workspace.PaneResized{Split: split, Ratio: r + delta})
	m.resize()
	return cmd
}

func (m *Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	route := m.pendingNav
	m.confirming = false
	m.pendingNav = nil
	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}
	if route == nil {
		m.quitting = true
		m.hub.Stop()
		return m, tea.Quit
	}
	return m, m.apply(workspace.RouteChanged{Route: *route})
}

func (m *Model) openPrompt(kind promptKind, ref workspace.RevisionRef) {
	m.prompt = kind
	m.input.Reset()
	switch kind {
	case promptLocation:
		m.input.Placeholder = "/new or /<revision id>"
		if rev, ok := workspace.Held(ref); ok {
			m.input.SetValue(workspace.ExistingRoute(rev.ID).Path())
		}
	case promptRename:
		m.input.Placeholder = "project name"
		m.input.SetValue(m.state.Workspace.ProjectName)
	}
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil
	case "enter":
		kind, value := m.prompt, strings.TrimSpace(m.input.Value())
		m.prompt = promptNone
		m.input.Blur()
		if kind == promptRename {
			if value == "" {
				return m, nil
			}
			return m, m.apply(workspace.ProjectNameChanged{Name: value})
		}
		return m, m.navigate(workspace.ParseRoute(value))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) paneMsg(msg pane.Msg) tea.Cmd {
	return m.apply(workspace.PaneMsg{Kind: m.state.Pane.Kind(), Msg: msg})
}

func (m *Model) handlePaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch p := m.state.Pane.(type) {
	case pane.Packages:
		switch {
		case key.Matches(msg, m.keys.Up):
			return m, m.paneMsg(pane.CursorMoved{Delta: -1})
		case key.Matches(msg, m.keys.Down):
			return m, m.paneMsg(pane.CursorMoved{Delta: 1})
		case key.Matches(msg, m.keys.Install):
			return m, m.paneMsg(pane.InstallSelected{})
		case key.Matches(msg, m.keys.Remove):
			if p.Cursor < len(p.Results) {
				return m, m.apply(workspace.PackageRemoved{Name: p.Results[p.Cursor].Name})
			}
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			return m, m.apply(workspace.PaneOpened{Kind: pane.KindPackages})
		}
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		if v := m.query.Value(); v != p.Query {
			return m, tea.Batch(cmd, m.paneMsg(pane.QueryChanged{Query: v}))
		}
		return m, cmd

	case pane.Settings:
		switch {
		case key.Matches(msg, m.keys.FontUp):
			return m, m.paneMsg(pane.FontSizeStepped{Delta: 1})
		case key.Matches(msg, m.keys.FontDown):
			return m, m.paneMsg(pane.FontSizeStepped{Delta: -1})
		case key.Matches(msg, m.keys.Theme):
			return m, m.paneMsg(pane.ThemeCycled{})
		case key.Matches(msg, m.keys.VimMode):
			return m, m.paneMsg(pane.VimModeToggled{})
		case key.Matches(msg, m.keys.ApplyPane):
			return m, m.paneMsg(pane.SettingsApplied{})
		case key.Matches(msg, m.keys.Cancel):
			if p.Modified() {
				return m, m.paneMsg(pane.SettingsReverted{})
			}
			return m, m.apply(workspace.PaneOpened{Kind: pane.KindSettings})
		}
	}
	return m, nil
}
