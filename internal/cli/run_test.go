package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizrun/internal/session"
	"quizrun/internal/testutil"
	"quizrun/internal/ui/live"
)

// setupQuiz writes the sample questions and a config next to them.
func setupQuiz(t *testing.T, configBody string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "quiz.json", testutil.SampleQuestionsJSON)
	return testutil.WriteFile(t, dir, ".quizrun.yml", "questions: quiz.json\n"+configBody)
}

func withRunInput(t *testing.T, script string) {
	t.Helper()
	original := runInput
	runInput = strings.NewReader(script)
	t.Cleanup(func() { runInput = original })
}

// TestRunPlainSession verifies the plain prompt runs a full quiz from the config.
func TestRunPlainSession(t *testing.T) {
	configPath := setupQuiz(t, "ui: plain\nshuffle_questions: false\nmatrix_shuffle: none\nno_color: true\n")
	withRunInput(t, "s 2\nc\nn\ns 1\ns 2\nn\nx 1 1\nx 2 1\nf\nq\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"run", "--config", configPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Total: 3/5") {
		t.Fatalf("expected total, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Question 1 / 4") {
		t.Fatalf("expected first question header, got:\n%s", out.String())
	}
}

// TestRunFlagsOverrideConfig verifies flags and the positional file beat the config.
func TestRunFlagsOverrideConfig(t *testing.T) {
	configPath := setupQuiz(t, "ui: live\nreanswer: allow\n")
	other := testutil.WriteFile(t, t.TempDir(), "other.yaml", `version: 1
questions:
  - type: single_choice
    question: Pick one
    options: [a, b]
    answer: 0
`)
	withRunInput(t, "s 1\nc\ns 2\nq\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"run", "--config", configPath, "--ui", "plain", "--reanswer", "lock", "--no-color", other}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Question 1 / 1") {
		t.Fatalf("expected the positional question file, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "answer locked") {
		t.Fatalf("expected lock policy from flag, got:\n%s", out.String())
	}
}

// TestRunLiveUsesProgram verifies the live path and the report printed after exit.
func TestRunLiveUsesProgram(t *testing.T) {
	configPath := setupQuiz(t, "ui: live\n")
	originalTerm := isTerminal
	isTerminal = func(any) bool { return true }
	t.Cleanup(func() { isTerminal = originalTerm })

	originalLive := runLive
	called := false
	runLive = func(_ context.Context, ctrl *session.Controller, _ io.Reader, _ io.Writer, opts live.Options) (session.Snapshot, error) {
		called = true
		if opts.Reanswer != session.ReanswerAllow {
			t.Errorf("expected allow policy, got %q", opts.Reanswer)
		}
		snap, _, err := ctrl.Finish()
		return snap, err
	}
	t.Cleanup(func() { runLive = originalLive })

	var out, errOut bytes.Buffer
	code := Run([]string{"run", "--config", configPath, "--seed", "11"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if !called {
		t.Fatalf("expected live program to run")
	}
	if !strings.Contains(out.String(), "Total: 0/5") {
		t.Fatalf("expected report after exit, got:\n%s", out.String())
	}
}

// TestRunRejectsBadInput verifies usage errors for options and missing files.
func TestRunRejectsBadInput(t *testing.T) {
	configPath := setupQuiz(t, "")
	cases := []struct {
		name string
		args []string
		code int
		want string
	}{
		{name: "bad policy", args: []string{"run", "--config", configPath, "--matrix-shuffle", "always"}, code: ExitUsage, want: "matrix_shuffle"},
		{name: "bad ui", args: []string{"run", "--config", configPath, "--ui", "web"}, code: ExitUsage, want: "ui"},
		{name: "extra args", args: []string{"run", "a.json", "b.json"}, code: ExitUsage, want: "unexpected arguments"},
		{name: "missing file", args: []string{"run", "--config", configPath, filepath.Join(t.TempDir(), "none.json")}, code: ExitError, want: "Failed to load questions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := Run(tc.args, &out, &errOut)
			if code != tc.code {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tc.code, code, errOut.String())
			}
			if !strings.Contains(errOut.String(), tc.want) {
				t.Fatalf("expected %q in stderr, got %q", tc.want, errOut.String())
			}
		})
	}
}

// TestRunLogFileKeepsConfiguredLevel verifies --log-file does not change the
// configured level and --log-level does.
func TestRunLogFileKeepsConfiguredLevel(t *testing.T) {
	configPath := setupQuiz(t, "ui: plain\nlog:\n  level: error\n")
	logPath := filepath.Join(t.TempDir(), "quiz.log")

	withRunInput(t, "q\n")
	var out, errOut bytes.Buffer
	if code := Run([]string{"run", "--config", configPath, "--log-file", logPath}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if data, err := os.ReadFile(logPath); err == nil && strings.Contains(string(data), "session closed") {
		t.Fatalf("expected info entries filtered at error level, got:\n%s", data)
	}

	withRunInput(t, "q\n")
	if code := Run([]string{"run", "--config", configPath, "--log-file", logPath, "--log-level", "info"}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "session closed") {
		t.Fatalf("expected info entry with --log-level info, got:\n%s", data)
	}

	if code := Run([]string{"run", "--config", configPath, "--log-level", "loud"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d for bad level, got %d", ExitUsage, code)
	}
}
