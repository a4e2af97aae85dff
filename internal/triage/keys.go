package triage

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is what a single input character asks the triage loop to do
type Action int

const (
	ActionUnknown Action = iota
	ActionObtained
	ActionNotFound
	ActionNotFinished
	ActionSkip
	ActionOpen
	ActionHelp
	ActionQuit
)

// KeyMap defines the triage key bindings
type KeyMap struct {
	Obtained    key.Binding
	NotFound    key.Binding
	NotFinished key.Binding
	Skip        key.Binding
	Open        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Obtained: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "done, obtained it"),
		),
		NotFound: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error, could not find it"),
		),
		NotFinished: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "not finished yet"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip, ask again next run"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open the page in a browser"),
		),
		Help: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit, keep the rest for later"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Obtained, k.NotFound, k.NotFinished, k.Skip, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Obtained, k.NotFound, k.NotFinished},
		{k.Skip, k.Open, k.Help, k.Quit},
	}
}

// Action maps one input character to an Action
func (k KeyMap) Action(r rune) Action {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	switch {
	case key.Matches(msg, k.Obtained):
		return ActionObtained
	case key.Matches(msg, k.NotFound):
		return ActionNotFound
	case key.Matches(msg, k.NotFinished):
		return ActionNotFinished
	case key.Matches(msg, k.Skip):
		return ActionSkip
	case key.Matches(msg, k.Open):
		return ActionOpen
	case key.Matches(msg, k.Help):
		return ActionHelp
	case key.Matches(msg, k.Quit):
		return ActionQuit
	default:
		return ActionUnknown
	}
}
