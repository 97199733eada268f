package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/codefionn/rpncalc/internal/calc"
	"github.com/codefionn/rpncalc/internal/clipboard"
	"github.com/codefionn/rpncalc/internal/config"
	"github.com/codefionn/rpncalc/internal/logger"
	"github.com/codefionn/rpncalc/internal/pprof"
	"github.com/codefionn/rpncalc/internal/tui"
	"golang.org/x/term"
)

type stringSlice []string

func (s *stringSlice) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(value string) error {
	if value == "" {
		return fmt.Errorf("value cannot be empty")
	}
	*s = append(*s, value)
	return nil
}

type options struct {
	configPath  string
	logLevel    string
	expressions []string
	profile     pprof.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.GetConfigPath()
	}
	cfg, cfgErr := config.Load(cfgPath)
	if cfg == nil {
		return fmt.Errorf("failed to load config: %w", cfgErr)
	}

	interactive := len(opts.expressions) == 0 && term.IsTerminal(int(os.Stdin.Fd()))
	var created bool
	var saveErr error
	if interactive {
		created, saveErr = writeDefaultConfig(cfgPath, cfg)
	}

	over := readOverrides(opts)
	over.apply(cfg)
	level, levelErr := logger.ParseLevel(cfg.LogLevel)
	if levelErr != nil {
		return levelErr
	}

	log, initErr := logger.Init(level, cfg.LogPath)
	if initErr != nil {
		return fmt.Errorf("failed to initialize logger: %w", initErr)
	}
	defer func() {
		if err != nil {
			logger.Error("Fatal error: %v", err)
		}
		if closeErr := log.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", closeErr)
		}
	}()

	logger.Info("rpncalc starting")
	if cfgErr != nil {
		logger.Warn("config %s: %v", cfgPath, cfgErr)
	}
	if saveErr != nil {
		logger.Warn("failed to write default config %s: %v", cfgPath, saveErr)
	} else if created {
		logger.Info("wrote default config to %s", cfgPath)
	}

	if opts.profile.Enabled() {
		profiler := pprof.NewHandler(opts.profile)
		if err := profiler.Start(); err != nil {
			return err
		}
		defer func() {
			if stopErr := profiler.Stop(); stopErr != nil {
				logger.Warn("profiling: %v", stopErr)
				fmt.Fprintf(os.Stderr, "Warning: %v\n", stopErr)
			}
		}()
	}

	state := newState(cfg, log)

	if !interactive {
		var input io.Reader = os.Stdin
		if len(opts.expressions) > 0 {
			input = strings.NewReader(strings.Join(opts.expressions, "\n"))
		}
		return runBatch(state, input, os.Stdout)
	}

	return runTUI(state, cfgPath, over)
}

// overrides holds the log settings from the environment and the command
// line. They take precedence over the config file, also after a reload.
type overrides struct {
	logLevel string
	logPath  string
}

// Environment variables override the config file, flags override both.
func readOverrides(opts *options) overrides {
	o := overrides{
		logLevel: strings.TrimSpace(os.Getenv("RPNCALC_LOG_LEVEL")),
		logPath:  strings.TrimSpace(os.Getenv("RPNCALC_LOG_PATH")),
	}
	if opts.logLevel != "" {
		o.logLevel = opts.logLevel
	}
	return o
}

func (o overrides) apply(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logPath != "" {
		cfg.LogPath = o.logPath
	}
}

// writeDefaultConfig saves cfg to path when no config file exists there yet,
// so the user has a file to edit and the watcher a directory to watch.
func writeDefaultConfig(path string, cfg *config.Config) (bool, error) {
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := cfg.Save(path); err != nil {
		return false, err
	}
	return true, nil
}

func parseArgs(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("rpncalc", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		opts        options
		expressions stringSlice
	)
	fs.StringVar(&opts.configPath, "config", "", "Path to the config file (default: "+config.GetConfigPath()+")")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error or none")
	fs.Var(&expressions, "e", "Evaluate an input line and print the stack (repeatable)")
	fs.StringVar(&opts.profile.CPUProfile, "cpuprofile", "", "Write a CPU profile to this file")
	fs.StringVar(&opts.profile.HeapProfile, "memprofile", "", "Write a heap profile to this file on exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintln(fs.Output(), "Without -e and with a terminal on stdin the interactive calculator starts.")
		fmt.Fprintln(fs.Output(), "Otherwise every input line is pushed in turn and the stack is printed.")
		fmt.Fprintln(fs.Output(), "\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s (use -e to evaluate input)", strings.Join(fs.Args(), " "))
	}
	opts.expressions = expressions
	return &opts, nil
}

func newState(cfg *config.Config, log *logger.Logger) *calc.State {
	stateOpts := []calc.Option{
		calc.WithLogger(log.WithPrefix("calc").Slog()),
		calc.WithAngleMode(cfg.Angle()),
		calc.WithDisplayBase(cfg.DisplayBase),
		calc.WithDisplay(cfg.Precision, cfg.ScientificNotationLimit, cfg.LocaleTag()),
	}
	if cfg.Clipboard {
		clip, err := clipboard.Open()
		if err != nil {
			logger.Warn("system clipboard unavailable, using an in-memory one: %v", err)
		}
		stateOpts = append(stateOpts, calc.WithClipboard(clip))
	}
	return calc.New(stateOpts...)
}

func runTUI(state *calc.State, cfgPath string, over overrides) error {
	logger.Info("Running in TUI mode")

	model := tui.New(state)
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, cfgPath, func(cfg *config.Config, err error) {
		over.apply(cfg)
		program.Send(tui.ConfigChangedMsg{Config: cfg, Err: err})
	}); err != nil {
		logger.Warn("config hot reload disabled: %v", err)
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
