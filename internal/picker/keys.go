package picker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// EventKind is a semantic keyboard event.
type EventKind int

const (
	EventIgnored EventKind = iota
	EventCancel
	EventEscape
	EventEnter
	EventUp
	EventDown
	EventLeft
	EventRight
	EventBackspace
	EventCharacter
)

// Event is the result of normalizing one key message.
type Event struct {
	Kind EventKind
	// Text holds the printable characters of an EventCharacter. A single
	// message can carry several of them when input arrives faster than it
	// is read, or when text is pasted.
	Text string
}

// KeyMap defines the key bindings of the picker.
type KeyMap struct {
	Cancel    key.Binding
	Escape    key.Binding
	Enter     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "navigate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "action"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
		),
	}
}

// ShortHelp returns the bindings shown in the hint line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Enter, k.Escape, k.Cancel}
}

// FullHelp returns the key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = DefaultKeyMap()

// ParseKey maps a raw key message to a semantic event. Printable ASCII
// (space through tilde) becomes EventCharacter with every such rune of the
// message kept in order; anything unbound is EventIgnored.
func ParseKey(msg tea.KeyMsg) Event {
	switch {
	case key.Matches(msg, defaultKeys.Cancel):
		return Event{Kind: EventCancel}
	case key.Matches(msg, defaultKeys.Escape):
		return Event{Kind: EventEscape}
	case key.Matches(msg, defaultKeys.Enter):
		return Event{Kind: EventEnter}
	case key.Matches(msg, defaultKeys.Up):
		return Event{Kind: EventUp}
	case key.Matches(msg, defaultKeys.Down):
		return Event{Kind: EventDown}
	case key.Matches(msg, defaultKeys.Left):
		return Event{Kind: EventLeft}
	case key.Matches(msg, defaultKeys.Right):
		return Event{Kind: EventRight}
	case key.Matches(msg, defaultKeys.Backspace):
		return Event{Kind: EventBackspace}
	}

	switch msg.Type {
	case tea.KeySpace:
		return Event{Kind: EventCharacter, Text: " "}
	case tea.KeyRunes:
		if msg.Alt {
			return Event{Kind: EventIgnored}
		}
		if text := printable(msg.Runes); text != "" {
			return Event{Kind: EventCharacter, Text: text}
		}
	}
	return Event{Kind: EventIgnored}
}

// printable returns the printable runes of rs as a string.
func printable(rs []rune) string {
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if isPrintable(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

func isPrintable(r rune) bool {
	return r >= ' ' && r <= '~'
}
