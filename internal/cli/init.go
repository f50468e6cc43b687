package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizrun/internal/config"
	"quizrun/internal/question"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dirFlag := flags.String("dir", "", "Directory to scaffold into (default: current directory)")
		formatFlag := flags.String("format", string(question.FormatYAML), "Question file format: json|yaml|xlsx")
		yes := flags.Bool("yes", false, "Skip the confirmation prompt")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		format := question.Format(strings.ToLower(strings.TrimSpace(*formatFlag)))
		switch format {
		case question.FormatJSON, question.FormatYAML, question.FormatXLSX:
		default:
			fmt.Fprintf(stderr, "invalid format %q (expected json, yaml or xlsx)\n", *formatFlag)
			return ExitUsage
		}

		targetDir := strings.TrimSpace(*dirFlag)
		if targetDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetDir = wd
		}
		targetDir, err := filepath.Abs(targetDir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if info, err := os.Stat(targetDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: %q is not a directory\n", targetDir)
			return ExitError
		}

		questionsName := "questions." + string(format)
		questionsPath := filepath.Join(targetDir, questionsName)
		configPath := filepath.Join(targetDir, config.ConfigFileName)
		for _, path := range []string{questionsPath, configPath} {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(stderr, "Init failed: %s already exists\n", path)
				return ExitError
			} else if !os.IsNotExist(err) {
				fmt.Fprintf(stderr, "Init failed: stat %s: %v\n", path, err)
				return ExitError
			}
		}

		if !*yes {
			in := initInput
			if in == nil {
				in = os.Stdin
			}
			confirm, err := promptYesNo(bufio.NewReader(in), stdout, fmt.Sprintf("Create a sample quiz in %s?", targetDir), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !confirm {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		data, err := question.Encode(sampleDocument(), format)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if err := os.WriteFile(questionsPath, data, 0o644); err != nil {
			fmt.Fprintf(stderr, "Init failed: write questions: %v\n", err)
			return ExitError
		}
		if err := config.Scaffold(configPath, questionsName); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Wrote %s\n", questionsPath)
		fmt.Fprintf(stdout, "Wrote %s\n", configPath)
		return ExitOK
	}
}

// sampleDocument is the starter quiz written by init. It covers every question type.
func sampleDocument() question.Document {
	return question.Document{
		Version: 1,
		Questions: []question.Record{
			{
				ID:       "capital",
				Type:     string(question.KindSingleChoice),
				Question: "What is the capital of France?",
				Options:  []string{"Berlin", "Paris", "Madrid", "Rome"},
				Answer:   question.NewAnswerValue(1),
			},
			{
				ID:       "primes",
				Type:     string(question.KindMultiChoice),
				Question: "Which numbers are prime?",
				Options:  []string{"2", "4", "7", "9", "11"},
				Answer:   question.NewAnswerValue([]int{0, 2, 4}),
			},
			{
				ID:        "sounds",
				Type:      string(question.KindCrossTable),
				Question:  "Match each animal to its sound",
				RowHeader: "Animal",
				RowNames:  []string{"cat", "dog", "cow"},
				ColNames: []question.ColumnGroup{{
					Group: "Sound",
					Items: []string{"meow", "woof", "moo"},
				}},
				Answer: question.NewAnswerValue([][]bool{
					{true, false, false},
					{false, true, false},
					{false, false, true},
				}),
			},
			{
				ID:       "map",
				Type:     string(question.KindDragImage),
				Question: "Drag the city names onto the map",
			},
		},
	}
}
