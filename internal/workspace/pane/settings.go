package pane

import (
	"slices"

	"github.com/jask/codepad/internal/config"
)

// Settings edits a draft of the editor settings until it is applied.
type Settings struct {
	Saved config.Editor
	Draft config.Editor
}

type FontSizeStepped struct{ Delta int }

type ThemeCycled struct{}

type VimModeToggled struct{}

type SettingsApplied struct{}

type SettingsReverted struct{}

func (FontSizeStepped) paneMsg()  {}
func (ThemeCycled) paneMsg()      {}
func (VimModeToggled) paneMsg()   {}
func (SettingsApplied) paneMsg()  {}
func (SettingsReverted) paneMsg() {}

func (Settings) Kind() Kind                { return KindSettings }
func (Settings) Subscriptions() []Listener { return nil }
func (Settings) sealed()                   {}

// Modified reports whether the draft has unapplied changes.
func (s Settings) Modified() bool { return s.Draft != s.Saved }

func (s Settings) Update(msg Msg) (Pane, Effect) {
	switch msg := msg.(type) {
	case FontSizeStepped:
		s.Draft.FontSize += msg.Delta
		s.Draft = s.Draft.Normalize()
	case ThemeCycled:
		i := slices.Index(config.Themes, s.Draft.Theme)
		s.Draft.Theme = config.Themes[(i+1)%len(config.Themes)]
	case VimModeToggled:
		s.Draft.VimMode = !s.Draft.VimMode
	case SettingsApplied:
		if !s.Modified() {
			return s, None{}
		}
		s.Saved = s.Draft
		return s, ApplySettings{Settings: s.Draft}
	case SettingsReverted:
		s.Draft = s.Saved
	}
	return s, None{}
}
