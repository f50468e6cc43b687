package live

import (
	"math/rand/v2"
	"testing"
	"time"

	"quizrun/internal/answer"
	"quizrun/internal/session"
	"quizrun/internal/testutil"
)

// newSession starts a session over the sample questions in document order.
func newSession(t *testing.T, opts session.Options) *session.Controller {
	t.Helper()
	opts.KeepOrder = true
	opts.Rand = rand.New(rand.NewPCG(3, 4))
	ctrl, err := session.New(testutil.SampleCatalog(), opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return ctrl
}

// TestReduceSingleChoiceSelect verifies picks replace the single choice draft.
func TestReduceSingleChoiceSelect(t *testing.T) {
	testutil.RunWithTimeout(t, time.Second, func() {
		state := NewState(newSession(t, session.Options{}).Snapshot(), session.ReanswerAllow)
		state = Reduce(state, Action{Kind: ActionPick, Index: 2})
		if state.Draft != answer.Select(2) {
			t.Fatalf("expected option 3 selected, got %#v", state.Draft)
		}
		state = Reduce(state, Action{Kind: ActionCursorUp})
		state = Reduce(state, Action{Kind: ActionToggle})
		if state.Draft != answer.Select(1) {
			t.Fatalf("expected option 2 selected, got %#v", state.Draft)
		}
		state = Reduce(state, Action{Kind: ActionPick, Index: 7})
		if state.Message == "" {
			t.Fatalf("expected out of range message")
		}
	})
}

// TestReduceMultiChoiceToggle verifies toggles flip one option at a time.
func TestReduceMultiChoiceToggle(t *testing.T) {
	testutil.RunWithTimeout(t, time.Second, func() {
		ctrl := newSession(t, session.Options{})
		snap, err := ctrl.Navigate(1)
		if err != nil {
			t.Fatalf("navigate: %v", err)
		}
		state := NewState(snap, session.ReanswerAllow)
		state = Reduce(state, Action{Kind: ActionToggle})
		state = Reduce(state, Action{Kind: ActionCursorDown})
		state = Reduce(state, Action{Kind: ActionCursorDown})
		state = Reduce(state, Action{Kind: ActionToggle})
		state = Reduce(state, Action{Kind: ActionPick, Index: 0})
		got := state.Draft.(answer.MultiChoice).Selected
		want := []bool{false, false, true, false}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
		if snap.Answer.(answer.MultiChoice).Selected[0] {
			t.Fatalf("expected snapshot answer to stay untouched")
		}
	})
}

// TestReduceTableToggleIsCanonical verifies cell toggles land in canonical order.
func TestReduceTableToggleIsCanonical(t *testing.T) {
	testutil.RunWithTimeout(t, time.Second, func() {
		ctrl := newSession(t, session.Options{})
		snap, err := ctrl.Navigate(2)
		if err != nil {
			t.Fatalf("navigate: %v", err)
		}
		state := NewState(snap, session.ReanswerAllow)
		state = Reduce(state, Action{Kind: ActionCursorDown})
		state = Reduce(state, Action{Kind: ActionColumnNext})
		state = Reduce(state, Action{Kind: ActionToggle})
		if !state.Snapshot.Table.Checked[1][1] {
			t.Fatalf("expected display cell (1,1) checked")
		}
		r, c := snap.Table.Layout.ToCanonical(1, 1)
		draft := state.Draft.(answer.CrossTable)
		if !draft.Checked[r][c] {
			t.Fatalf("expected canonical cell (%d,%d) checked, got %v", r, c, draft.Checked)
		}
		if snap.Table.Checked[1][1] {
			t.Fatalf("expected original snapshot table untouched")
		}
		state = Reduce(state, Action{Kind: ActionColumnNext})
		if state.Col != 0 {
			t.Fatalf("expected column cursor to wrap, got %d", state.Col)
		}
	})
}

// TestReduceLockedRejectsEdits verifies locked reveals keep the answer.
func TestReduceLockedRejectsEdits(t *testing.T) {
	testutil.RunWithTimeout(t, time.Second, func() {
		ctrl := newSession(t, session.Options{Reanswer: session.ReanswerLock})
		snap, _, err := ctrl.Commit()
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
		state := NewState(snap, session.ReanswerLock)
		if !state.Locked {
			t.Fatalf("expected locked state")
		}
		state = Reduce(state, Action{Kind: ActionPick, Index: 0})
		if state.Dirty() {
			t.Fatalf("expected no draft")
		}
		if state.Message != "answer locked after reveal" {
			t.Fatalf("unexpected message %q", state.Message)
		}
	})
}

// TestReduceCursorClamps verifies the option cursor stays in range.
func TestReduceCursorClamps(t *testing.T) {
	state := NewState(newSession(t, session.Options{}).Snapshot(), session.ReanswerAllow)
	state = Reduce(state, Action{Kind: ActionCursorUp})
	if state.Row != 0 {
		t.Fatalf("expected row 0, got %d", state.Row)
	}
	for i := 0; i < 5; i++ {
		state = Reduce(state, Action{Kind: ActionCursorDown})
	}
	if state.Row != 2 {
		t.Fatalf("expected row 2, got %d", state.Row)
	}
}
