package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Compile   key.Binding
	Save      key.Binding
	Format    key.Binding
	Packages  key.Binding
	Settings  key.Binding
	NewDoc    key.Binding
	Location  key.Binding
	Rename    key.Binding
	Focus     key.Binding
	Narrower  key.Binding
	Wider     key.Binding
	Shorter   key.Binding
	Taller    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Up        key.Binding
	Down      key.Binding
	Install   key.Binding
	Remove    key.Binding
	FontUp    key.Binding
	FontDown  key.Binding
	Theme     key.Binding
	VimMode   key.Binding
	ApplyPane key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Compile:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "compile")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Format:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "format")),
		Packages:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "packages")),
		Settings:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "settings")),
		NewDoc:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Location:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "open")),
		Rename:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "rename")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Narrower:  key.NewBinding(key.WithKeys("ctrl+left")),
		Wider:     key.NewBinding(key.WithKeys("ctrl+right")),
		Shorter:   key.NewBinding(key.WithKeys("ctrl+up")),
		Taller:    key.NewBinding(key.WithKeys("ctrl+down")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y")),
		Cancel:    key.NewBinding(key.WithKeys("esc")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Install:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "install")),
		Remove:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove")),
		FontUp:    key.NewBinding(key.WithKeys("+", "=")),
		FontDown:  key.NewBinding(key.WithKeys("-")),
		Theme:     key.NewBinding(key.WithKeys("t")),
		VimMode:   key.NewBinding(key.WithKeys("v")),
		ApplyPane: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	}
}

// helpLine renders the short help for the global bindings.
func (k keyMap) helpLine() string {
	out := ""
	for i, b := range []key.Binding{k.Compile, k.Save, k.Format, k.Packages, k.Settings, k.NewDoc, k.Location, k.Rename, k.Quit} {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
