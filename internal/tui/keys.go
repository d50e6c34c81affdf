package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down       key.Binding
	Left, Right    key.Binding
	Vote           key.Binding
	Like, Dislike  key.Binding
	Add, Reload    key.Binding
	Quit           key.Binding
	NextField      key.Binding
	PrevField      key.Binding
	Submit, Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "like")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "dislike")),
		Vote:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "vote")),
		Like:      key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "gostei")),
		Dislike:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "não gostei")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// listKeys is the help shown over the item list.
type listKeys struct{ keyMap }

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Vote, k.Add, k.Reload, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Like, k.Dislike}}
}

// formKeys is the help shown inside the add-item dialog.
type formKeys struct{ keyMap }

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Submit, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
