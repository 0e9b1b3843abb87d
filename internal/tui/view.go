package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/codepad/internal/workspace"
	"github.com/jask/codepad/internal/workspace/pane"
)

const chromeRows = 4

// columns splits the terminal width between the editors and the output by
// the editor ratio.
func (m *Model) columns() (left, right int) {
	left = int(float64(m.width) * m.state.Workspace.Layout.EditorRatio)
	right = m.width - left
	return max(left, 10), max(right, 10)
}

// rows splits the left column between code and markup by the output ratio.
func (m *Model) rows() (code, markup int) {
	avail := max(m.height-chromeRows, 6)
	code = int(float64(avail) * (1 - m.state.Workspace.Layout.OutputRatio))
	return max(code, 3), max(avail-code, 3)
}

func (m *Model) resize() {
	left, _ := m.columns()
	codeRows, markupRows := m.rows()
	m.code.SetWidth(left - 4)
	m.code.SetHeight(codeRows - 2)
	m.markup.SetWidth(left - 4)
	m.markup.SetHeight(markupRows - 2)
	m.query.Width = m.width/2 - 6
	m.input.Width = m.width - 6
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	st := stylesFor(m.state.Settings.Theme)
	left, right := m.columns()
	codeRows, markupRows := m.rows()

	codeBox, markupBox := st.box, st.box
	switch m.focus {
	case focusCode:
		codeBox = st.active
	case focusMarkup:
		markupBox = st.active
	}
	editors := lipgloss.JoinVertical(lipgloss.Left,
		codeBox.Width(left-2).Height(codeRows-2).Render(m.code.View()),
		markupBox.Width(left-2).Height(markupRows-2).Render(m.markup.View()),
	)
	side := m.renderOutput(st)
	if m.state.Pane.Kind() != pane.KindHidden {
		side = m.renderPane(st)
	}
	sideBox := st.box
	if m.focus == focusPane {
		sideBox = st.active
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, editors,
		sideBox.Width(right-4).Height(codeRows+markupRows-2).Render(side))

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(st), body, m.renderFooter(st))
}

func (m *Model) renderHeader(st styles) string {
	s := m.state
	name := s.Workspace.ProjectName
	if s.Dirty {
		name += " *"
	}
	link := st.ok.Render("attached")
	if !s.Connected {
		link = st.err.Render("detached")
	}
	where := workspace.NewDocumentRoute().Path()
	switch r := s.Revision.(type) {
	case workspace.Loading:
		where = "loading " + r.ID.String()
	case workspace.Replacing:
		where = "loading " + r.ID.String()
	case workspace.Loaded:
		where = workspace.ExistingRoute(r.Revision.ID).Path()
	}
	line := fmt.Sprintf("%s  %s  [%s]  %s", name, st.dim.Render(where), workspace.CompileLabel(s.Compile), link)
	if s.Saving {
		line += "  saving..."
	}
	return st.header.Render(ansi.Truncate(line, max(m.width-2, 1), "…"))
}

func (m *Model) renderOutput(st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render("Output") + "\n")
	switch c := m.state.Compile.(type) {
	case workspace.Compiling:
		b.WriteString(st.dim.Render("compiling..."))
	case workspace.Succeeded:
		b.WriteString(st.ok.Render("Compiled without errors."))
	case workspace.FinishedWithErrors:
		for _, e := range c.Errors {
			b.WriteString(st.err.Render(fmt.Sprintf("-- %s  line %d:%d", e.Title, e.Line, e.Column)) + "\n")
			b.WriteString(e.Message + "\n\n")
		}
	default:
		b.WriteString(st.dim.Render("ctrl+r to compile"))
	}
	b.WriteString("\n\n" + st.title.Render("Packages") + "\n")
	for _, p := range m.state.Workspace.Content.Packages {
		b.WriteString(fmt.Sprintf("%s %s\n", p.Name, st.dim.Render(p.Version)))
	}
	return b.String()
}

func (m *Model) renderPane(st styles) string {
	var b strings.Builder
	switch p := m.state.Pane.(type) {
	case pane.Packages:
		b.WriteString(st.title.Render("Install package") + "\n")
		b.WriteString(m.query.View() + "\n\n")
		if p.Searching {
			b.WriteString(st.dim.Render("searching...") + "\n")
		}
		installed := make(map[string]string, len(m.state.Workspace.Content.Packages))
		for _, pkg := range m.state.Workspace.Content.Packages {
			installed[pkg.Name] = pkg.Version
		}
		for i, r := range p.Results {
			line := fmt.Sprintf("%s %s", r.Name, r.Version)
			if v, ok := installed[r.Name]; ok {
				line += st.dim.Render(" (installed " + v + ")")
			}
			if i == p.Cursor {
				line = st.cursor.Render(line)
			}
			b.WriteString(line + "\n")
			if r.Summary != "" {
				b.WriteString("  " + st.dim.Render(r.Summary) + "\n")
			}
		}
		b.WriteString("\n" + st.dim.Render("[enter] install  [ctrl+d] remove  [esc] close"))
	case pane.Settings:
		b.WriteString(st.title.Render("Settings") + "\n")
		vim := "off"
		if p.Draft.VimMode {
			vim = "on"
		}
		b.WriteString(fmt.Sprintf("Font size: %d\nTheme:     %s\nVim mode:  %s\n", p.Draft.FontSize, p.Draft.Theme, vim))
		if p.Modified() {
			b.WriteString(st.dim.Render("(modified)") + "\n")
		}
		b.WriteString("\n" + st.dim.Render("[+/-] font  [t] theme  [v] vim  [enter] apply  [esc] revert/close"))
	}
	return b.String()
}

func (m *Model) renderFooter(st styles) string {
	var line string
	switch {
	case m.confirming && m.pendingNav != nil:
		line = "Discard unsaved changes and open " + m.pendingNav.Path() + "? [y/N]"
	case m.confirming:
		line = "Discard unsaved changes and quit? [y/N]"
	case m.prompt == promptLocation:
		line = "Open: " + m.input.View()
	case m.prompt == promptRename:
		line = "Name: " + m.input.View()
	case m.state.Status.Text != "":
		line = m.state.Status.Text
		if m.state.Status.IsErr {
			line = st.err.Render(line)
		}
	default:
		line = st.dim.Render(m.keys.helpLine())
	}
	return st.footer.Render(ansi.Truncate(line, max(m.width, 1), "…"))
}
