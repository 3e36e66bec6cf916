package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Toggle   key.Binding
	Grab     key.Binding
	Drop     key.Binding
	Cancel   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Search   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		Grab:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "pick up/drop")),
		Drop:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "ctrl+k"), key.WithHelp("shift+↑", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "ctrl+j"), key.WithHelp("shift+↓", "move down")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Toggle, k.Grab, k.MoveUp, k.MoveDown, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Toggle, k.Grab, k.Drop, k.Cancel, k.MoveUp, k.MoveDown},
		{k.Search, k.Reload, k.Help, k.Quit},
	}
}

func isMoveUp(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyShiftUp || msg.Type == tea.KeyCtrlK
}

func isMoveDown(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyShiftDown || msg.Type == tea.KeyCtrlJ
}
