// Package answer holds the per-question answer state of a quiz session.
package answer

import (
	"errors"
	"fmt"

	"quizrun/internal/question"
)

// State is the answer to one question. Its concrete type matches the question kind.
type State interface {
	Kind() question.Kind
	isState()
}

// SingleChoice records the selected option. Answered=false means nothing is selected.
type SingleChoice struct {
	Index    int
	Answered bool
}

// MultiChoice records a checked flag per option.
type MultiChoice struct {
	Selected []bool
}

// CrossTable records the checked cells in canonical row/column order.
type CrossTable struct {
	Checked [][]bool
}

// DragImage is a placeholder; the type has no interaction yet.
type DragImage struct{}

func (SingleChoice) Kind() question.Kind { return question.KindSingleChoice }
func (MultiChoice) Kind() question.Kind  { return question.KindMultiChoice }
func (CrossTable) Kind() question.Kind   { return question.KindCrossTable }
func (DragImage) Kind() question.Kind    { return question.KindDragImage }

func (SingleChoice) isState() {}
func (MultiChoice) isState()  {}
func (CrossTable) isState()   {}
func (DragImage) isState()    {}

// Select returns a SingleChoice with index selected.
func Select(index int) SingleChoice {
	return SingleChoice{Index: index, Answered: true}
}

// ErrIndexOutOfRange is returned for question indices outside the store.
var ErrIndexOutOfRange = errors.New("question index out of range")

// ShapeError reports a state that does not fit its question.
type ShapeError struct {
	Index   int
	Kind    question.Kind
	Message string
}

// Error returns a readable message.
func (err *ShapeError) Error() string {
	return fmt.Sprintf("answer for question %d (%s): %s", err.Index, err.Kind, err.Message)
}

// Initial returns the empty answer for q.
func Initial(q question.Question) State {
	switch body := q.Body.(type) {
	case question.SingleChoice:
		return SingleChoice{}
	case question.MultiChoice:
		return MultiChoice{Selected: make([]bool, len(body.Options))}
	case question.CrossTable:
		checked := make([][]bool, body.Rows())
		for i := range checked {
			checked[i] = make([]bool, body.Cols())
		}
		return CrossTable{Checked: checked}
	default:
		return DragImage{}
	}
}

// Check verifies that state has the variant and dimensions q expects. Only the
// value forms of the variants are accepted.
func Check(q question.Question, state State) error {
	switch state.(type) {
	case nil:
		return fmt.Errorf("state is nil")
	case SingleChoice, MultiChoice, CrossTable, DragImage:
	default:
		return fmt.Errorf("state type %T is not an answer value", state)
	}
	if state.Kind() != q.Kind() {
		return fmt.Errorf("state kind %s does not match question kind %s", state.Kind(), q.Kind())
	}
	switch body := q.Body.(type) {
	case question.SingleChoice:
		s := state.(SingleChoice)
		if s.Answered && (s.Index < 0 || s.Index >= len(body.Options)) {
			return fmt.Errorf("selected index %d out of range [0,%d)", s.Index, len(body.Options))
		}
	case question.MultiChoice:
		s := state.(MultiChoice)
		if len(s.Selected) != len(body.Options) {
			return fmt.Errorf("has %d selections, expected %d", len(s.Selected), len(body.Options))
		}
	case question.CrossTable:
		s := state.(CrossTable)
		if len(s.Checked) != body.Rows() {
			return fmt.Errorf("has %d rows, expected %d", len(s.Checked), body.Rows())
		}
		for i, row := range s.Checked {
			if len(row) != body.Cols() {
				return fmt.Errorf("row %d has %d cells, expected %d", i, len(row), body.Cols())
			}
		}
	}
	return nil
}

// Clone deep-copies a state.
func Clone(state State) State {
	switch s := state.(type) {
	case MultiChoice:
		return MultiChoice{Selected: append([]bool(nil), s.Selected...)}
	case CrossTable:
		return CrossTable{Checked: question.CloneMatrix(s.Checked)}
	default:
		return state
	}
}
