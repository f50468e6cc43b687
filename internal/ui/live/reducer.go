package live

import (
	"quizrun/internal/answer"
	"quizrun/internal/question"
	"quizrun/internal/session"
)

// Reduce applies a local edit to the screen state.
func Reduce(state State, action Action) State {
	state.Message = ""
	switch action.Kind {
	case ActionCursorUp:
		state.Row = clamp(state.Row-1, rowCount(state))
	case ActionCursorDown:
		state.Row = clamp(state.Row+1, rowCount(state))
	case ActionColumnNext:
		state.Col = wrap(state.Col+1, colCount(state))
	case ActionColumnPrev:
		state.Col = wrap(state.Col-1, colCount(state))
	case ActionToggle:
		state = edit(state, state.Row)
	case ActionPick:
		if action.Index < 0 || action.Index >= rowCount(state) {
			state.Message = "no option " + fmtInt(action.Index+1)
			return state
		}
		if _, table := state.Snapshot.Question.Body.(question.CrossTable); table {
			return state
		}
		state.Row = action.Index
		state = edit(state, action.Index)
	}
	return state
}

// edit changes the answer at option index, or at the cursor cell for tables.
func edit(state State, index int) State {
	if state.Locked {
		state.Message = "answer locked after reveal"
		return state
	}
	switch current := state.Answer().(type) {
	case answer.SingleChoice:
		state.Draft = answer.Select(index)
	case answer.MultiChoice:
		selected := append([]bool(nil), current.Selected...)
		if index >= 0 && index < len(selected) {
			selected[index] = !selected[index]
		}
		state.Draft = answer.MultiChoice{Selected: selected}
	case answer.CrossTable:
		state = toggleCell(state)
	case answer.DragImage:
		state.Message = "drag-image questions are not interactive yet"
	}
	return state
}

func toggleCell(state State) State {
	view := state.Snapshot.Table
	if view == nil {
		return state
	}
	canonical, err := view.Toggle(state.Row, state.Col)
	if err != nil {
		state.Message = err.Error()
		return state
	}
	table := *view
	table.Checked = question.CloneMatrix(view.Checked)
	table.Checked[state.Row][state.Col] = !table.Checked[state.Row][state.Col]
	state.Snapshot.Table = &table
	state.Draft = canonical
	return state
}

// rowCount returns how many rows the cursor moves over.
func rowCount(state State) int {
	switch body := state.Snapshot.Question.Body.(type) {
	case question.SingleChoice:
		return len(body.Options)
	case question.MultiChoice:
		return len(body.Options)
	case question.CrossTable:
		return body.Rows()
	default:
		return 0
	}
}

func colCount(state State) int {
	if body, ok := state.Snapshot.Question.Body.(question.CrossTable); ok {
		return body.Cols()
	}
	return 0
}

func clamp(value, n int) int {
	if n == 0 || value < 0 {
		return 0
	}
	if value >= n {
		return n - 1
	}
	return value
}

func wrap(value, n int) int {
	if n == 0 {
		return 0
	}
	return ((value % n) + n) % n
}

// withSnapshot moves the screen to a new session snapshot. The cursor is kept
// while the question stays the same.
func withSnapshot(state State, snap session.Snapshot, policy session.ReanswerPolicy) State {
	next := NewState(snap, policy)
	if snap.Index == state.Snapshot.Index {
		next.Row = clamp(state.Row, rowCount(next))
		next.Col = clamp(state.Col, colCount(next))
	}
	return next
}
