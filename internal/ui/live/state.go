package live

import (
	"quizrun/internal/answer"
	"quizrun/internal/session"
)

// ActionKind identifies a local edit on the question on screen.
type ActionKind int

const (
	// ActionCursorUp moves the option or row cursor up.
	ActionCursorUp ActionKind = iota
	// ActionCursorDown moves the option or row cursor down.
	ActionCursorDown
	// ActionColumnNext moves the table column cursor right, wrapping.
	ActionColumnNext
	// ActionColumnPrev moves the table column cursor left, wrapping.
	ActionColumnPrev
	// ActionToggle selects the option or flips the cell under the cursor.
	ActionToggle
	// ActionPick selects option Index directly.
	ActionPick
)

// Action is one local edit.
type Action struct {
	Kind  ActionKind
	Index int
}

// State is the screen state of the question being answered. Edits live in Draft
// until the session flushes them on the next transition.
type State struct {
	Snapshot session.Snapshot
	// Draft is the edited answer in canonical order. Nil when nothing changed.
	Draft answer.State
	// Row is the option cursor, or the display row cursor for tables.
	Row int
	// Col is the display column cursor for tables.
	Col int
	// Locked disables edits while a question is revealed under the lock policy.
	Locked  bool
	Message string
}

// NewState starts screen state for a snapshot.
func NewState(snap session.Snapshot, policy session.ReanswerPolicy) State {
	return State{
		Snapshot: snap,
		Locked:   snap.Revealed() && policy == session.ReanswerLock,
	}
}

// Answer returns the draft when there is one, else the stored answer.
func (s State) Answer() answer.State {
	if s.Draft != nil {
		return s.Draft
	}
	return s.Snapshot.Answer
}

// Dirty reports whether the draft holds unsaved edits.
func (s State) Dirty() bool { return s.Draft != nil }

// draftBox is shared between a model and its copies so the session can flush
// the latest draft.
type draftBox struct {
	state answer.State
}

// Flush hands the pending draft to the session and clears it.
func (b *draftBox) Flush() (answer.State, bool) {
	if b.state == nil {
		return nil, false
	}
	state := b.state
	b.state = nil
	return state, true
}
