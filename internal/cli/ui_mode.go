package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a stream is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode picks the live UI only when both ends of the session are terminals.
func resolveUIMode(mode string, stdin io.Reader, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	interactive := isTerminal(stdin) && isTerminal(stdout)
	switch normalized {
	case "auto":
		return uiModeDecision{useLive: interactive}, nil
	case "live":
		if interactive {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			warning: "Live UI requested but the session is not attached to a terminal; falling back to the plain prompt.",
		}, nil
	case "plain":
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects a reader or writer for TTY support.
func defaultIsTerminal(stream any) bool {
	switch typed := stream.(type) {
	case nil:
		return false
	case *os.File:
		return typed != nil && term.IsTerminal(int(typed.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(typed.Fd()))
	default:
		return false
	}
}
