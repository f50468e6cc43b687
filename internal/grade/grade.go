// Package grade scores answers against the answer key with partial credit.
// Every function is pure: grading the same inputs twice gives the same result.
package grade

import (
	"errors"
	"fmt"

	"quizrun/internal/answer"
	"quizrun/internal/question"
)

// NotGradedNote is the note attached to questions whose kind cannot be graded yet.
const NotGradedNote = "grading not implemented"

// Result is the score of one question. Missed and Over stay zero for single choice.
type Result struct {
	Index   int
	ID      string
	Kind    question.Kind
	Graded  bool
	Correct int
	Total   int
	Missed  int
	Over    int
	Note    string
}

// Report aggregates the results of every question in a session.
type Report struct {
	Results []Result
	Correct int
	Total   int
	// Ungraded counts questions skipped by the totals.
	Ungraded int
}

// UnsupportedGradingError is returned internally for kinds without a grading rule.
type UnsupportedGradingError struct {
	Kind question.Kind
}

// Error returns a readable message.
func (err *UnsupportedGradingError) Error() string {
	return fmt.Sprintf("grading %s questions is not supported", err.Kind)
}

// Question grades one answer. Unsupported kinds yield an ungraded Result rather than
// an error; an error means the answer does not fit the question.
func Question(q question.Question, state answer.State) (Result, error) {
	result, err := dispatch(q, state)
	var unsupported *UnsupportedGradingError
	if errors.As(err, &unsupported) {
		return Result{ID: q.ID, Kind: q.Kind(), Note: NotGradedNote}, nil
	}
	if err != nil {
		return Result{}, err
	}
	result.ID = q.ID
	result.Kind = q.Kind()
	result.Graded = true
	return result, nil
}

func dispatch(q question.Question, state answer.State) (Result, error) {
	if err := answer.Check(q, state); err != nil {
		return Result{}, fmt.Errorf("grade question %q: %w", q.ID, err)
	}
	switch body := q.Body.(type) {
	case question.SingleChoice:
		return gradeSingleChoice(body, state.(answer.SingleChoice)), nil
	case question.MultiChoice:
		return gradeMultiChoice(body, state.(answer.MultiChoice)), nil
	case question.CrossTable:
		return gradeCrossTable(body, state.(answer.CrossTable)), nil
	default:
		return Result{}, &UnsupportedGradingError{Kind: q.Kind()}
	}
}

func gradeSingleChoice(q question.SingleChoice, s answer.SingleChoice) Result {
	result := Result{Total: 1}
	if s.Answered && s.Index == q.CorrectIndex {
		result.Correct = 1
	}
	return result
}

func gradeMultiChoice(q question.MultiChoice, s answer.MultiChoice) Result {
	result := Result{Total: len(q.CorrectIndices)}
	for i, selected := range s.Selected {
		correct := q.IsCorrect(i)
		switch {
		case correct && selected:
			result.Correct++
		case correct:
			result.Missed++
		case selected:
			result.Over++
		}
	}
	return result
}

func gradeCrossTable(q question.CrossTable, s answer.CrossTable) Result {
	var result Result
	for i, row := range q.Answer {
		for j, expected := range row {
			checked := s.Checked[i][j]
			switch {
			case expected && checked:
				result.Total++
				result.Correct++
			case expected:
				result.Total++
				result.Missed++
			case checked:
				result.Over++
			}
		}
	}
	return result
}

// Session grades every question in order. states must hold one answer per question.
func Session(questions []question.Question, states []answer.State) (Report, error) {
	if len(questions) != len(states) {
		return Report{}, fmt.Errorf("grade session: %d questions but %d answers", len(questions), len(states))
	}
	report := Report{Results: make([]Result, 0, len(questions))}
	for i, q := range questions {
		result, err := Question(q, states[i])
		if err != nil {
			return Report{}, fmt.Errorf("grade session: question %d: %w", i, err)
		}
		result.Index = i
		if result.Graded {
			report.Correct += result.Correct
			report.Total += result.Total
		} else {
			report.Ungraded++
		}
		report.Results = append(report.Results, result)
	}
	return report, nil
}
