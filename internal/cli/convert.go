package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizrun/internal/question"
)

// runConvert builds the handler for the convert command.
func runConvert(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		force := flags.Bool("force", false, "Overwrite the output file")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() != 2 {
			fmt.Fprintln(stderr, "convert needs an input and an output path")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		input, output := flags.Arg(0), flags.Arg(1)
		if filepath.Clean(input) == filepath.Clean(output) {
			fmt.Fprintln(stderr, "input and output must differ")
			return ExitUsage
		}
		if !*force {
			if _, err := os.Stat(output); err == nil {
				fmt.Fprintf(stderr, "Convert failed: %s already exists (use --force)\n", output)
				return ExitError
			}
		}

		doc, err := question.LoadDocument(input)
		if err != nil {
			fmt.Fprintf(stderr, "Convert failed: %v\n", err)
			return ExitError
		}
		catalog, err := question.Build(doc)
		if err != nil {
			fmt.Fprintf(stderr, "Convert failed:\n%s\n", describeLoadError(err))
			return ExitError
		}

		format := question.FormatForPath(output)
		data, err := question.Encode(doc, format)
		if err != nil {
			fmt.Fprintf(stderr, "Convert failed: %v\n", err)
			return ExitError
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			fmt.Fprintf(stderr, "Convert failed: write %s: %v\n", output, err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %d questions to %s (%s)\n", catalog.Len(), output, strings.ToUpper(string(format)))
		return ExitOK
	}
}
