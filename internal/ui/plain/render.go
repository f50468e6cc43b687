// Package plain drives a quiz session through a line-oriented prompt for
// terminals without full-screen support and for scripted input.
package plain

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"quizrun/internal/answer"
	"quizrun/internal/question"
	"quizrun/internal/session"
)

// Render writes the current question, its answer and any reveal data.
func Render(w io.Writer, snap session.Snapshot, noColor bool) {
	fmt.Fprintf(w, "Question %d / %d [%s] %s\n", snap.Index+1, snap.Count, snap.Question.Kind(), snap.Mode)
	fmt.Fprintln(w, snap.Question.Prompt)
	revealed := snap.Revealed()
	switch body := snap.Question.Body.(type) {
	case question.SingleChoice:
		current, _ := snap.Answer.(answer.SingleChoice)
		for i, option := range body.Options {
			chosen := current.Answered && current.Index == i
			fmt.Fprintf(w, "  %s %d. %s%s\n", marker(chosen, "(*)", "( )"), i+1, option, revealNote(revealed, chosen, i == body.CorrectIndex))
		}
	case question.MultiChoice:
		current, _ := snap.Answer.(answer.MultiChoice)
		for i, option := range body.Options {
			chosen := i < len(current.Selected) && current.Selected[i]
			fmt.Fprintf(w, "  %s %d. %s%s\n", marker(chosen, "[x]", "[ ]"), i+1, option, revealNote(revealed, chosen, body.IsCorrect(i)))
		}
	case question.CrossTable:
		if snap.Table != nil {
			fmt.Fprintln(w, renderMatrix(snap.Table, revealed, noColor))
		}
	case question.DragImage:
		fmt.Fprintln(w, "  (this question type has no interaction yet)")
	}
	if snap.Result != nil {
		fmt.Fprintf(w, "Result: %s\n", snap.Result.Summary())
	}
	if snap.Report != nil {
		fmt.Fprintln(w, snap.Report.String())
	}
}

// renderMatrix draws the display-ordered matrix with its row and column labels.
func renderMatrix(view *session.TableView, revealed, noColor bool) string {
	headers := append([]string{view.RowHeader}, numbered(view.ColumnLabels)...)
	rows := make([][]string, 0, len(view.RowLabels))
	for i, label := range view.RowLabels {
		row := []string{fmt.Sprintf("%d. %s", i+1, label)}
		for j := range view.ColumnLabels {
			row = append(row, marker(view.Checked[i][j], "[x]", "[ ]")+cellNote(revealed, view.Checked[i][j], view.Key[i][j]))
		}
		rows = append(rows, row)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if !noColor {
		t = t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	banner := ""
	if view.ColumnGroup != "" {
		banner = view.ColumnGroup + "\n"
	}
	return banner + t.Render()
}

func numbered(labels []string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = fmt.Sprintf("%d. %s", i+1, label)
	}
	return out
}

func marker(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}

// revealNote spells out the key for an option once revealed.
func revealNote(revealed, chosen, correct bool) string {
	if !revealed {
		return ""
	}
	switch {
	case chosen && correct:
		return "  <- correct"
	case correct:
		return "  <- correct (missed)"
	case chosen:
		return "  <- wrong"
	default:
		return ""
	}
}

func cellNote(revealed, chosen, correct bool) string {
	if !revealed {
		return ""
	}
	switch {
	case chosen && correct:
		return " ok"
	case correct:
		return " missed"
	case chosen:
		return " over"
	default:
		return ""
	}
}

// helpText lists the prompt commands.
func helpText() string {
	return strings.Join([]string{
		"Commands:",
		"  n            next question",
		"  p            previous question",
		"  s <k>        select option k (toggles for multiple choice)",
		"  x <r> <c>    toggle matrix cell at row r, column c",
		"  c            commit and reveal the current question",
		"  f            finish and grade every question",
		"  h            show this help",
		"  q            quit",
	}, "\n")
}
