//go:build cucumber

package plain

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"quizrun/internal/session"
	"quizrun/internal/testutil"
)

// TestPlainScenarios runs the plain prompt feature scenarios.
func TestPlainScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "..", "features", "ui", "plain.feature")
	suite := godog.TestSuite{
		Name:                "plain-prompt",
		ScenarioInitializer: InitializePlainScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializePlainScenario wires steps for plain prompt scenarios.
func InitializePlainScenario(ctx *godog.ScenarioContext) {
	state := &plainScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.ctrl = nil
		state.output = ""
		return ctx, nil
	})

	ctx.Step(`^the sample question set in document order$`, state.givenSample)
	ctx.Step(`^I enter:$`, state.whenIEnter)
	ctx.Step(`^the output contains "([^"]+)"$`, state.thenOutputContains)
}

type plainScenarioState struct {
	ctrl   *session.Controller
	output string
}

// givenSample starts a session over the shared sample questions.
func (s *plainScenarioState) givenSample() error {
	ctrl, err := session.New(testutil.SampleCatalog(), session.Options{
		KeepOrder:     true,
		MatrixShuffle: session.ShuffleNone,
		Rand:          rand.New(rand.NewPCG(1, 1)),
	})
	if err != nil {
		return err
	}
	s.ctrl = ctrl
	return nil
}

// whenIEnter feeds the doc string to the prompt.
func (s *plainScenarioState) whenIEnter(script *godog.DocString) error {
	var out bytes.Buffer
	if _, err := Run(context.Background(), s.ctrl, strings.NewReader(script.Content+"\n"), &out, Options{NoColor: true}); err != nil {
		return err
	}
	s.output = out.String()
	return nil
}

// thenOutputContains asserts on the captured prompt output.
func (s *plainScenarioState) thenOutputContains(want string) error {
	if !strings.Contains(s.output, want) {
		return fmt.Errorf("expected %q in output:\n%s", want, s.output)
	}
	return nil
}
