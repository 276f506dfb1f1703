package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Up         key.Binding
	Down       key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	Collapse   key.Binding
	Reset      key.Binding
	Snapping   key.Binding
	Overscroll key.Binding
	Trace      key.Binding
	Manual     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next page")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev page")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "fling down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "fling up")),
		Collapse:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse")),
		Reset:      key.NewBinding(key.WithKeys("r", "home"), key.WithHelp("r", "reveal")),
		Snapping:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snapping")),
		Overscroll: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overscroll")),
		Trace:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "trace")),
		Manual:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manual")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PageDown, k.Snapping, k.Overscroll, k.Trace, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down, k.PageDown, k.PageUp},
		{k.Collapse, k.Reset, k.Snapping, k.Overscroll, k.Trace, k.Manual, k.Quit},
	}
}
