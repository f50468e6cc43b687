package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"quizrun/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .quizrun.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args()[1:], " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, resolved, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		if resolved != "" {
			fmt.Fprintf(stdout, "Config OK (%s)\n", resolved)
		}

		questionsPath := cfg.Questions
		if flags.NArg() == 1 {
			questionsPath = flags.Arg(0)
		}
		if questionsPath == "" {
			fmt.Fprintln(stderr, "No question file given (pass one or set questions in the config)")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		catalog, err := question.Load(questionsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", describeLoadError(err))
			return ExitError
		}

		counts := catalog.CountByKind()
		fmt.Fprintf(stdout, "Questions OK: %d questions\n", catalog.Len())
		for _, kind := range []question.Kind{
			question.KindSingleChoice,
			question.KindMultiChoice,
			question.KindCrossTable,
			question.KindDragImage,
		} {
			fmt.Fprintf(stdout, "  %-14s %d\n", kind, counts[kind])
		}
		return ExitOK
	}
}

// describeLoadError lists validation issues one per line.
func describeLoadError(err error) string {
	var validationErr *question.ValidationError
	if !errors.As(err, &validationErr) {
		return err.Error()
	}
	lines := make([]string, 0, len(validationErr.Issues))
	for _, issue := range validationErr.Issues {
		lines = append(lines, "  "+issue.Error())
	}
	return strings.Join(lines, "\n")
}
