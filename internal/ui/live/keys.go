package live

import (
	"github.com/charmbracelet/bubbles/key"

	"quizrun/internal/question"
)

// KeyMap lists the quiz key bindings.
type KeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Up      key.Binding
	Down    key.Binding
	ColNext key.Binding
	ColPrev key.Binding
	Toggle  key.Binding
	Commit  key.Binding
	Finish  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "previous")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		ColNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		ColPrev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous column")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "select")),
		Commit:  key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "commit")),
		Finish:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "finish and grade")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.Commit, k.Finish, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Commit, k.Finish},
		{k.Up, k.Down, k.ColNext, k.ColPrev, k.Toggle},
		{k.Help, k.Quit},
	}
}

// syncEnabled greys out bindings that do nothing in the current state.
func (k *KeyMap) syncEnabled(state State) {
	snap := state.Snapshot
	k.Prev.SetEnabled(snap.CanPrev())
	k.Next.SetEnabled(snap.CanNext())
	k.Commit.SetEnabled(snap.CanCommit())
	k.Finish.SetEnabled(!snap.Revealed())
	_, table := snap.Question.Body.(question.CrossTable)
	k.ColNext.SetEnabled(table)
	k.ColPrev.SetEnabled(table)
	k.Toggle.SetEnabled(!state.Locked)
}
