package storydetail

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the story detail page
type KeyMap struct {
	WordExplorer   key.Binding
	StoryAdventure key.Binding
	BrainQuest     key.Binding
	NextTab        key.Binding
	Prev           key.Binding
	Next           key.Binding
	Back           key.Binding
	Scroll         key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		WordExplorer: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "word explorer"),
		),
		StoryAdventure: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "story adventure"),
		),
		BrainQuest: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "brain quest"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("←/p", "previous story"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("→/n", "next story"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "backspace"),
			key.WithHelp("esc/h", "back"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("j", "k", "up", "down"),
			key.WithHelp("↑↓/jk", "scroll"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.WordExplorer, k.StoryAdventure, k.BrainQuest, k.NextTab, k.Prev, k.Next, k.Back}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.WordExplorer, k.StoryAdventure, k.BrainQuest, k.NextTab},
		{k.Prev, k.Next, k.Back, k.Scroll},
	}
}
