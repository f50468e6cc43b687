package grade

import (
	"fmt"
	"strings"

	"quizrun/internal/question"
)

// Summary renders a single result as "score/total" with missed and over counts
// for the partial-credit kinds.
func (r Result) Summary() string {
	if !r.Graded {
		return fmt.Sprintf("%s %s", kindLabel(r.Kind), r.Note)
	}
	if r.Kind == question.KindSingleChoice {
		return fmt.Sprintf("score %d/%d", r.Correct, r.Total)
	}
	return fmt.Sprintf("score %d/%d (missed %d, over %d)", r.Correct, r.Total, r.Missed, r.Over)
}

// Lines renders the grand total followed by one line per question.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Results)+1)
	lines = append(lines, fmt.Sprintf("Total: %d/%d", r.Correct, r.Total))
	for _, result := range r.Results {
		lines = append(lines, fmt.Sprintf("Q%d: %s", result.Index+1, result.Summary()))
	}
	return lines
}

// String joins Lines with newlines.
func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

func kindLabel(kind question.Kind) string {
	return strings.ReplaceAll(string(kind), "_", "-")
}
