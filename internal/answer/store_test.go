package answer

import (
	"errors"
	"testing"

	"quizrun/internal/question"
)

func sampleQuestions() []question.Question {
	return []question.Question{
		{Prompt: "single", Body: question.SingleChoice{Options: []string{"A", "B", "C"}, CorrectIndex: 1}},
		{Prompt: "multi", Body: question.MultiChoice{Options: []string{"a", "b", "c", "d"}, CorrectIndices: []int{0, 2}}},
		{Prompt: "table", Body: question.CrossTable{
			RowNames:    []string{"r1", "r2"},
			ColumnNames: []string{"c1", "c2", "c3"},
			Answer:      [][]bool{{true, false, false}, {false, true, true}},
		}},
		{Prompt: "drag", Body: question.DragImage{}},
	}
}

// TestInitialStates verifies each kind starts with its empty answer.
func TestInitialStates(t *testing.T) {
	store := NewStore(sampleQuestions())

	single, _ := store.Get(0)
	if s := single.(SingleChoice); s.Answered {
		t.Fatalf("expected no selection, got %+v", s)
	}
	multi, _ := store.Get(1)
	if s := multi.(MultiChoice); len(s.Selected) != 4 || s.Selected[0] || s.Selected[3] {
		t.Fatalf("expected 4 unchecked options, got %+v", s)
	}
	table, _ := store.Get(2)
	checked := table.(CrossTable).Checked
	if len(checked) != 2 || len(checked[0]) != 3 {
		t.Fatalf("expected 2x3 grid, got %v", checked)
	}
	for _, row := range checked {
		for _, cell := range row {
			if cell {
				t.Fatalf("expected all cells unchecked, got %v", checked)
			}
		}
	}
	drag, _ := store.Get(3)
	if _, ok := drag.(DragImage); !ok {
		t.Fatalf("expected drag image placeholder, got %T", drag)
	}
}

// TestUpdateOverwritesWholeState verifies updates replace the answer and copy it.
func TestUpdateOverwritesWholeState(t *testing.T) {
	store := NewStore(sampleQuestions())
	selected := []bool{true, false, true, false}
	if err := store.Update(1, MultiChoice{Selected: selected}); err != nil {
		t.Fatalf("update: %v", err)
	}
	selected[0] = false

	got, err := store.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	s := got.(MultiChoice)
	if !s.Selected[0] || !s.Selected[2] {
		t.Fatalf("store shares memory with caller: %v", s.Selected)
	}
	s.Selected[2] = false
	again, _ := store.Get(1)
	if !again.(MultiChoice).Selected[2] {
		t.Fatalf("store shares memory with reader")
	}
}

// TestUpdateRejectsBadShapes verifies mismatched answers are refused and the old one kept.
func TestUpdateRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name  string
		index int
		state State
	}{
		{name: "wrong kind", index: 0, state: MultiChoice{Selected: []bool{true}}},
		{name: "single index out of range", index: 0, state: Select(3)},
		{name: "multi length", index: 1, state: MultiChoice{Selected: []bool{true}}},
		{name: "table rows", index: 2, state: CrossTable{Checked: [][]bool{{true, true, true}}}},
		{name: "table cols", index: 2, state: CrossTable{Checked: [][]bool{{true}, {true}}}},
		{name: "nil", index: 3, state: nil},
		{name: "multi pointer", index: 1, state: &MultiChoice{Selected: make([]bool, 4)}},
		{name: "single pointer", index: 0, state: &SingleChoice{Index: 1, Answered: true}},
		{name: "nil table pointer", index: 2, state: (*CrossTable)(nil)},
		{name: "drag pointer", index: 3, state: &DragImage{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(sampleQuestions())
			before, _ := store.Get(tc.index)
			err := store.Update(tc.index, tc.state)
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected shape error, got %v", err)
			}
			after, _ := store.Get(tc.index)
			if after.Kind() != before.Kind() {
				t.Fatalf("state replaced despite error")
			}
		})
	}
}

// TestIndexOutOfRange verifies out-of-range indices are reported.
func TestIndexOutOfRange(t *testing.T) {
	store := NewStore(sampleQuestions())
	if _, err := store.Get(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := store.Update(-1, DragImage{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}
