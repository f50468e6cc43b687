package session

import (
	"fmt"

	"quizrun/internal/answer"
	"quizrun/internal/grade"
	"quizrun/internal/permute"
	"quizrun/internal/question"
)

// Mode is the reveal state of the current question.
type Mode int

const (
	// Answering accepts answers and commits.
	Answering Mode = iota
	// Revealed shows the answer key for the current question.
	Revealed
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Answering:
		return "answering"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Snapshot is everything a presentation adapter needs to draw the current question.
// It shares no memory with the controller.
type Snapshot struct {
	SessionID string
	Index     int
	Count     int
	Mode      Mode
	Question  question.Question
	Answer    answer.State
	// Table is set for cross table questions and holds display-ordered data.
	Table *TableView
	// Result is the grade of the last commit of this question, until navigation.
	Result *grade.Result
	// Report is the last finish report, until navigation.
	Report *grade.Report
}

// Revealed reports whether the answer key is shown.
func (s Snapshot) Revealed() bool { return s.Mode == Revealed }

// CanPrev reports whether a previous question exists.
func (s Snapshot) CanPrev() bool { return s.Index > 0 }

// CanNext reports whether a next question exists.
func (s Snapshot) CanNext() bool { return s.Index < s.Count-1 }

// CanCommit reports whether the current question can still be committed.
func (s Snapshot) CanCommit() bool { return s.Mode == Answering }

// TableView is the display-space rendering of a cross table question.
type TableView struct {
	Layout       permute.Layout
	RowHeader    string
	ColumnGroup  string
	RowLabels    []string
	ColumnLabels []string
	// Checked is the user's answer in display order.
	Checked [][]bool
	// Key is the answer key in display order.
	Key [][]bool
}

// Toggle flips display cell (i, j) and returns the whole answer in canonical order,
// ready for ReportAnswerChange.
func (v *TableView) Toggle(i, j int) (answer.CrossTable, error) {
	if i < 0 || i >= len(v.Checked) || j < 0 || j >= len(v.Checked[i]) {
		return answer.CrossTable{}, fmt.Errorf("cell (%d,%d) outside %dx%d table", i, j, len(v.RowLabels), len(v.ColumnLabels))
	}
	display := question.CloneMatrix(v.Checked)
	display[i][j] = !display[i][j]
	canonical, err := permute.ToCanonical(v.Layout.Rows, v.Layout.Cols, display)
	if err != nil {
		return answer.CrossTable{}, err
	}
	return answer.CrossTable{Checked: canonical}, nil
}

func newTableView(body question.CrossTable, state answer.CrossTable, layout permute.Layout) (*TableView, error) {
	rows, err := permute.ApplyToSequence(layout.Rows, body.RowNames)
	if err != nil {
		return nil, err
	}
	cols, err := permute.ApplyToSequence(layout.Cols, body.ColumnNames)
	if err != nil {
		return nil, err
	}
	checked, err := permute.ApplyToMatrix(layout.Rows, layout.Cols, state.Checked)
	if err != nil {
		return nil, err
	}
	key, err := permute.ApplyToMatrix(layout.Rows, layout.Cols, body.Answer)
	if err != nil {
		return nil, err
	}
	return &TableView{
		Layout:       layout.Clone(),
		RowHeader:    body.RowHeader,
		ColumnGroup:  body.ColumnGroup,
		RowLabels:    rows,
		ColumnLabels: cols,
		Checked:      checked,
		Key:          key,
	}, nil
}
