package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"quizrun/internal/answer"
	"quizrun/internal/session"
)

// Options configures the plain adapter.
type Options struct {
	NoColor bool
	Logger  *zap.Logger
}

// errQuit ends the read loop.
var errQuit = errors.New("quit")

// Run reads commands from in until quit or end of input and returns the final snapshot.
func Run(ctx context.Context, ctrl *session.Controller, in io.Reader, out io.Writer, opts Options) (session.Snapshot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(in)
	snap := ctrl.Snapshot()
	Render(out, snap, opts.NoColor)
	for {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return snap, scanner.Err()
		}
		next, err := execute(ctrl, snap, scanner.Text(), out)
		if errors.Is(err, errQuit) {
			return snap, nil
		}
		if err != nil {
			logger.Debug("command rejected", zap.String("line", scanner.Text()), zap.Error(err))
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if next != nil {
			snap = *next
			Render(out, snap, opts.NoColor)
		}
	}
}

// execute runs one command line. A nil snapshot means nothing needs redrawing.
func execute(ctrl *session.Controller, snap session.Snapshot, line string, out io.Writer) (*session.Snapshot, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	args := fields[1:]
	var (
		next session.Snapshot
		err  error
	)
	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return nil, errQuit
	case "h", "help", "?":
		fmt.Fprintln(out, helpText())
		return nil, nil
	case "n", "next":
		if !snap.CanNext() {
			return nil, fmt.Errorf("already on the last question")
		}
		next, err = ctrl.Navigate(1)
	case "p", "prev":
		if !snap.CanPrev() {
			return nil, fmt.Errorf("already on the first question")
		}
		next, err = ctrl.Navigate(-1)
	case "c", "commit":
		next, _, err = ctrl.Commit()
	case "f", "finish":
		next, _, err = ctrl.Finish()
	case "s", "select":
		next, err = selectOption(ctrl, snap, args)
	case "x", "cell":
		next, err = toggleCell(ctrl, snap, args)
	default:
		return nil, fmt.Errorf("unknown command %q (h for help)", fields[0])
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func selectOption(ctrl *session.Controller, snap session.Snapshot, args []string) (session.Snapshot, error) {
	values, err := parseArgs(args, 1)
	if err != nil {
		return snap, err
	}
	index := values[0] - 1
	switch current := snap.Answer.(type) {
	case answer.SingleChoice:
		return ctrl.ReportAnswerChange(snap.Index, answer.Select(index))
	case answer.MultiChoice:
		if index < 0 || index >= len(current.Selected) {
			return snap, fmt.Errorf("no option %d", index+1)
		}
		selected := append([]bool(nil), current.Selected...)
		selected[index] = !selected[index]
		return ctrl.ReportAnswerChange(snap.Index, answer.MultiChoice{Selected: selected})
	default:
		return snap, fmt.Errorf("select works on choice questions; use x <r> <c> for matrices")
	}
}

func toggleCell(ctrl *session.Controller, snap session.Snapshot, args []string) (session.Snapshot, error) {
	if snap.Table == nil {
		return snap, fmt.Errorf("x works on matrix questions only")
	}
	values, err := parseArgs(args, 2)
	if err != nil {
		return snap, err
	}
	state, err := snap.Table.Toggle(values[0]-1, values[1]-1)
	if err != nil {
		return snap, err
	}
	return ctrl.ReportAnswerChange(snap.Index, state)
}

func parseArgs(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d number(s), got %d", want, len(args))
	}
	values := make([]int, 0, want)
	for _, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		values = append(values, value)
	}
	return values, nil
}
