package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal board.
type KeyMap struct {
	// Cursor movement. Moving down from the last grid row enters the
	// hotbar.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Press          key.Binding
	NextFolder     key.Binding
	PrevFolder     key.Binding
	NextPage       key.Binding
	NextHotbarPage key.Binding
	Back           key.Binding

	// Phrase editing.
	Speak      key.Binding
	DeleteLast key.Binding
	Clear      key.Binding
	Related    key.Binding
	Variant    key.Binding
	Plain      key.Binding

	Stop key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "right"),
	),
	Press: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "press"),
	),
	NextFolder: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next folder"),
	),
	PrevFolder: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev folder"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown"),
		key.WithHelp("n", "next page"),
	),
	NextHotbarPage: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hotbar page"),
	),
	Back: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "back"),
	),
	Speak: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "speak"),
	),
	DeleteLast: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("BS", "delete word"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	Related: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "related"),
	),
	Variant: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "variant"),
	),
	Plain: key.NewBinding(
		key.WithKeys("V"),
		key.WithHelp("V", "plain"),
	),
	Stop: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Speak, k.DeleteLast, k.NextFolder, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Press},
		{k.NextFolder, k.PrevFolder, k.NextPage, k.NextHotbarPage, k.Back},
		{k.Speak, k.DeleteLast, k.Clear, k.Related, k.Variant, k.Plain},
		{k.Stop, k.Help, k.Quit},
	}
}
