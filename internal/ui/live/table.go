package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizrun/internal/session"
)

const cellWidth = 8

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		styles := table.DefaultStyles()
		styles.Selected = lipgloss.NewStyle()
		styles.Header = styles.Header.UnsetForeground()
		return styles
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	return styles
}

// columnsForView builds the row header column plus one column per display column.
func columnsForView(view *session.TableView) []table.Column {
	header := view.RowHeader
	width := len([]rune(header))
	for _, label := range view.RowLabels {
		width = max(width, len([]rune(label)))
	}
	columns := []table.Column{{Title: header, Width: max(width, 4)}}
	for _, label := range view.ColumnLabels {
		columns = append(columns, table.Column{Title: label, Width: max(len([]rune(label)), cellWidth)})
	}
	return columns
}

// rowsForView converts the display matrix into table rows. The cursor cell is prefixed with ">".
func rowsForView(state State) []table.Row {
	view := state.Snapshot.Table
	revealed := state.Snapshot.Revealed()
	rows := make([]table.Row, 0, len(view.RowLabels))
	for i, label := range view.RowLabels {
		row := table.Row{label}
		for j := range view.ColumnLabels {
			cell := checkbox(view.Checked[i][j]) + markGlyph(markFor(revealed, view.Checked[i][j], view.Key[i][j]))
			if i == state.Row && j == state.Col {
				cell = ">" + cell
			} else {
				cell = " " + cell
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// newMatrixTable builds the bubbles table for a cross table question.
func newMatrixTable(state State, noColor bool) table.Model {
	view := state.Snapshot.Table
	t := table.New(
		table.WithColumns(columnsForView(view)),
		table.WithRows(rowsForView(state)),
		table.WithFocused(true),
		table.WithHeight(len(view.RowLabels)+1),
	)
	t.SetStyles(tableStyles(noColor))
	t.SetCursor(state.Row)
	return t
}
