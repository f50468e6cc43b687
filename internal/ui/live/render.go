package live

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizrun/internal/answer"
	"quizrun/internal/question"
)

// renderHeader renders the position, kind and mode line.
func renderHeader(state State, noColor bool) string {
	snap := state.Snapshot
	line := "Question " + fmtInt(snap.Index+1) + " / " + fmtInt(snap.Count) +
		" | " + formatKind(snap.Question.Kind()) +
		" | " + snap.Mode.String()
	if state.Dirty() {
		line += " | unsaved"
	}
	if state.Locked {
		line += " | locked"
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderPrompt renders the question text.
func renderPrompt(state State, noColor bool) string {
	return stylizeBold(state.Snapshot.Question.Prompt, noColor)
}

// renderOptions renders choice options with the cursor and reveal marks.
func renderOptions(state State, noColor bool) string {
	snap := state.Snapshot
	revealed := snap.Revealed()
	var lines []string
	switch body := snap.Question.Body.(type) {
	case question.SingleChoice:
		current, _ := state.Answer().(answer.SingleChoice)
		for i, option := range body.Options {
			chosen := current.Answered && current.Index == i
			mark := markFor(revealed, chosen, i == body.CorrectIndex)
			lines = append(lines, optionLine(state.Row == i, radio(chosen), i, option, mark, noColor))
		}
	case question.MultiChoice:
		current, _ := state.Answer().(answer.MultiChoice)
		for i, option := range body.Options {
			chosen := i < len(current.Selected) && current.Selected[i]
			mark := markFor(revealed, chosen, body.IsCorrect(i))
			lines = append(lines, optionLine(state.Row == i, checkbox(chosen), i, option, mark, noColor))
		}
	case question.DragImage:
		lines = append(lines, stylize("This question type has no interaction yet.", noColor, lipgloss.Color("244")))
	}
	return strings.Join(lines, "\n")
}

func optionLine(cursor bool, marker string, index int, option string, mark Mark, noColor bool) string {
	prefix := "  "
	if cursor {
		prefix = "> "
	}
	line := prefix + marker + " " + fmtInt(index+1) + ". " + option + markSuffix(mark)
	return stylizeMark(line, mark, noColor)
}

// renderGroupBanner renders the column group title above a matrix.
func renderGroupBanner(state State, noColor bool) string {
	view := state.Snapshot.Table
	if view == nil || view.ColumnGroup == "" {
		return ""
	}
	return stylize(view.ColumnGroup, noColor, lipgloss.Color("252"))
}

// renderResult renders the last commit or finish report.
func renderResult(state State, noColor bool) string {
	snap := state.Snapshot
	var lines []string
	if snap.Result != nil {
		lines = append(lines, "Result: "+snap.Result.Summary())
	}
	if snap.Report != nil {
		lines = append(lines, snap.Report.Lines()...)
	}
	if len(lines) == 0 {
		return ""
	}
	return stylize(strings.Join(lines, "\n"), noColor, lipgloss.Color("42"))
}

// renderFooter renders the last status message.
func renderFooter(state State, noColor bool) string {
	if state.Message == "" {
		return ""
	}
	return stylize(state.Message, noColor, lipgloss.Color("244"))
}

// joinBlocks stacks non-empty blocks with a blank line between them.
func joinBlocks(blocks ...string) string {
	kept := blocks[:0]
	for _, block := range blocks {
		if block != "" {
			kept = append(kept, block)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(kept, "\n\n"))
}
