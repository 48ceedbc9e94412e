package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap describes the key bindings for the footer and the key reference.
// Dispatch itself happens in the input modes.
type KeyMap struct {
	Submit     key.Binding
	Cancel     key.Binding
	Complete   key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Left       key.Binding
	Right      key.Binding
	ExtendUp   key.Binding
	ExtendDown key.Binding
	SelectAll  key.Binding
	Sort       key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the bindings of the picker
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete / switch focus")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous item")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next item / open list")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first item")),
		End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last item")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous cell (grid)")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next cell (grid)")),
		ExtendUp:   key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend selection up")),
		ExtendDown: key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend selection down")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "retype")),
		Sort:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sort alphabetically")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "keys")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Complete, k.Down, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel, k.Complete, k.SelectAll, k.Sort, k.Help},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Left, k.Right, k.ExtendUp, k.ExtendDown},
	}
}

// KeyReference renders the key bindings as a markdown document
func (k KeyMap) KeyReference() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Session", []key.Binding{k.Submit, k.Cancel, k.Sort, k.Help}},
		{"Text field", []key.Binding{k.Complete, k.SelectAll, k.Down, k.Up}},
		{"List", []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Left, k.Right, k.ExtendUp, k.ExtendDown}},
	}

	var b strings.Builder
	b.WriteString("# sprinter keys\n\n")
	b.WriteString("Type to filter. `*` matches any text, `?` one character and a space acts like `*`.\n")
	for _, section := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", section.title)
		for _, binding := range section.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nIn the list any printable key, Backspace or Delete goes back to the text field. ")
	b.WriteString("Up on the first row returns to the text field and restores what you typed.\n")
	return b.String()
}
