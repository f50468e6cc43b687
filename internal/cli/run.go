package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"quizrun/internal/config"
	"quizrun/internal/logging"
	"quizrun/internal/question"
	"quizrun/internal/session"
	"quizrun/internal/ui/live"
	"quizrun/internal/ui/plain"
)

// runInput allows tests to override stdin for the quiz prompt.
var runInput io.Reader = os.Stdin

// runLive starts the full-screen UI. Tests replace it.
var runLive = live.Run

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for "+config.ConfigFileName+")")
		uiMode := fs.String("ui", "", "UI mode: auto|live|plain")
		noColor := fs.Bool("no-color", false, "Disable colors")
		seed := fs.Uint64("seed", 0, "Seed for every shuffle (0 picks a random seed)")
		keepOrder := fs.Bool("keep-order", false, "Present questions in file order")
		matrixShuffle := fs.String("matrix-shuffle", "", "Matrix layout policy: per_render|per_session|none")
		reanswer := fs.String("reanswer", "", "Answer changes after reveal: allow|lock")
		logFile := fs.String("log-file", "", "Write a log to this file")
		logLevel := fs.String("log-level", "", "Log level: debug|info|warn|error")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if fs.NArg() > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "ui":
				cfg.UI = *uiMode
			case "no-color":
				cfg.NoColor = *noColor
			case "seed":
				cfg.Seed = *seed
			case "keep-order":
				cfg.ShuffleQuestions = !*keepOrder
			case "matrix-shuffle":
				cfg.MatrixShuffle = *matrixShuffle
			case "reanswer":
				cfg.Reanswer = *reanswer
			case "log-file":
				cfg.Log.File = *logFile
			case "log-level":
				cfg.Log.Level = *logLevel
			}
		})
		if fs.NArg() == 1 {
			cfg.Questions = fs.Arg(0)
		}
		config.Normalize(&cfg)
		if err := config.Validate(&cfg); err != nil {
			fmt.Fprintf(stderr, "Invalid options:\n%v\n", err)
			return ExitUsage
		}
		if cfg.Questions == "" {
			fmt.Fprintln(stderr, "No question file given (pass one or set questions in the config)")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		logger, err := logging.New(cfg.Log)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start logging: %v\n", err)
			return ExitError
		}
		defer func() { _ = logger.Sync() }()

		catalog, err := question.Load(cfg.Questions)
		if err != nil {
			logger.Error("load questions", zap.String("path", cfg.Questions), zap.Error(err))
			fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
			return ExitError
		}

		opts := sessionOptions(cfg, logger)
		ctrl, err := session.New(catalog, opts)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start session: %v\n", err)
			return ExitError
		}

		decision, err := resolveUIMode(cfg.UI, runInput, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid UI mode: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var final session.Snapshot
		if decision.useLive {
			final, err = runLive(ctx, ctrl, runInput, stdout, live.Options{
				NoColor:  cfg.NoColor,
				Reanswer: opts.Reanswer,
				Logger:   logger,
			})
		} else {
			final, err = plain.Run(ctx, ctrl, runInput, stdout, plain.Options{NoColor: cfg.NoColor, Logger: logger})
		}
		if err != nil {
			fmt.Fprintf(stderr, "Quiz ended with error: %v\n", err)
			return ExitError
		}
		if decision.useLive && final.Report != nil {
			fmt.Fprintln(stdout, final.Report.String())
		}
		logger.Info("session closed", zap.String("session_id", ctrl.ID()))
		return ExitOK
	}
}

// sessionOptions maps the runner config onto session options.
func sessionOptions(cfg config.Config, logger *zap.Logger) session.Options {
	opts := session.Options{
		KeepOrder:     !cfg.ShuffleQuestions,
		MatrixShuffle: session.ShufflePolicy(cfg.MatrixShuffle),
		Reanswer:      session.ReanswerPolicy(cfg.Reanswer),
		Logger:        logger,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	return opts
}
