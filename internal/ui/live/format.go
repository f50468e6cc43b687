package live

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizrun/internal/question"
)

// Mark is how a choice or cell is drawn once the key is revealed.
type Mark int

const (
	// MarkPlain is an unrevealed entry.
	MarkPlain Mark = iota
	// MarkHit is correct and chosen.
	MarkHit
	// MarkMissed is correct but not chosen.
	MarkMissed
	// MarkOver is chosen but not correct.
	MarkOver
)

// markFor classifies an entry for reveal highlighting.
func markFor(revealed, chosen, correct bool) Mark {
	if !revealed {
		return MarkPlain
	}
	switch {
	case chosen && correct:
		return MarkHit
	case correct:
		return MarkMissed
	case chosen:
		return MarkOver
	default:
		return MarkPlain
	}
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatKind renders a question kind for the header.
func formatKind(kind question.Kind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}

// checkbox renders a multi choice or cell marker.
func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// radio renders a single choice marker.
func radio(selected bool) string {
	if selected {
		return "(*)"
	}
	return "( )"
}

// markSuffix spells out reveal marks so they survive without color.
func markSuffix(mark Mark) string {
	switch mark {
	case MarkHit:
		return " ✓"
	case MarkMissed:
		return " ← correct"
	case MarkOver:
		return " ✗"
	default:
		return ""
	}
}

// markGlyph is the one-character form of markSuffix for table cells.
func markGlyph(mark Mark) string {
	switch mark {
	case MarkHit:
		return "✓"
	case MarkMissed:
		return "!"
	case MarkOver:
		return "✗"
	default:
		return ""
	}
}

// stylizeMark colors text by reveal mark when enabled.
func stylizeMark(text string, mark Mark, noColor bool) string {
	if noColor || mark == MarkPlain {
		return text
	}
	return markStyle(mark).Render(text)
}

// markStyle selects a style for a reveal mark.
func markStyle(mark Mark) lipgloss.Style {
	color := lipgloss.Color("244")
	switch mark {
	case MarkHit:
		color = lipgloss.Color("42")
	case MarkMissed:
		color = lipgloss.Color("220")
	case MarkOver:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// stylizeBold applies optional bold styling.
func stylizeBold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
