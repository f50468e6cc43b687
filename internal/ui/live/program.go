package live

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quizrun/internal/session"
)

// Run drives the session in a full-screen terminal UI until the user quits and
// returns the final snapshot.
func Run(ctx context.Context, ctrl *session.Controller, stdin io.Reader, stdout io.Writer, opts Options) (session.Snapshot, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	model := NewModel(ctrl, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return ctrl.Snapshot(), err
	}
	return ctrl.Snapshot(), nil
}
