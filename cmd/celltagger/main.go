package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/celltagger/internal/config"
	"github.com/example/celltagger/internal/label"
	"github.com/example/celltagger/internal/notify"
	"github.com/example/celltagger/internal/theme"
	"github.com/gogpu/gg"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs      *flag.FlagSet
	program string
	stdout  io.Writer
	stderr  io.Writer

	verbose      bool
	configPath   string
	cellSize     int
	defaultLabel string
	themeName    string
	display      string
	saveAlerts   bool
	copyAlerts   bool

	level       *slog.LevelVar
	logger      *slog.Logger
	loader      *config.Loader
	config      *config.Config
	notifier    *notify.Notifier
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot(stdout, stderr io.Writer) *root {
	level := new(slog.LevelVar)
	r := &root{
		fs:      flag.NewFlagSet("celltagger", flag.ContinueOnError),
		program: "celltagger",
		stdout:  stdout,
		stderr:  stderr,
		level:   level,
		logger:  slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	r.fs.SetOutput(stderr)
	r.fs.BoolVar(&r.verbose, "v", false, "enable debug logging")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to read")
	r.fs.IntVar(&r.cellSize, "cell-size", 0, "cell edge in image pixels (default from config, 100)")
	r.fs.StringVar(&r.defaultLabel, "default-label", "", "label of cells never painted (IGNORE, FIRE, SMOKE, OTHER)")

	// Precedence: CLI > Env > Config > Default
	// The flag defaults to "" so the fallback chain is resolved after parsing.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, light, high-contrast)")
	r.fs.StringVar(&r.display, "display", "", "monitor used to size the window (primary, index or output name)")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving labels")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveThemeName applies the CLI > environment > config precedence.
func resolveThemeName(cli, env, cfg string) string {
	for _, name := range []string{cli, env, cfg} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return ""
}

// setup loads the configuration and applies command line overrides.
func (r *root) setup() error {
	if r.verbose {
		r.level.Set(slog.LevelDebug)
	}
	gg.SetLogger(r.logger)

	r.loader = config.NewLoader(version, r.configPath)
	cfg, err := r.loader.Load()
	if err != nil {
		r.logger.Warn("failed to load config", "err", err)
		cfg = config.New()
	}
	if p := r.loader.GetConfigPath(); p != "" {
		r.logger.Debug("loaded config", "path", p)
	}

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["cell-size"] {
		cfg.CellSize = r.cellSize
	}
	if set["default-label"] {
		l, err := label.Parse(r.defaultLabel)
		if err != nil {
			return fmt.Errorf("-default-label: %w", err)
		}
		cfg.DefaultLabel = l
	}
	if set["notify-save"] {
		cfg.Notify.Save = r.saveAlerts
	}
	if set["notify-copy"] {
		cfg.Notify.Copy = r.copyAlerts
	}
	if err := cfg.GridOptions().Validate(); err != nil {
		return err
	}
	r.config = cfg

	r.notifier = notify.New(notify.LoadPreferences(), notify.WithLogger(r.logger))
	r.notifier.Enable(notify.EventSave, cfg.Notify.Save)
	r.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)

	themeName := resolveThemeName(r.themeName, os.Getenv("CELLTAGGER_THEME"), cfg.Theme)
	t, err := cfg.ResolveTheme(themeName, theme.NewLoader())
	if err != nil {
		// Only warn if a specific theme was requested but failed to load.
		if themeName != "default" {
			r.logger.Warn("failed to load theme, using default", "theme", themeName, "err", err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
	return nil
}

// command parses args and returns the selected subcommand. An argument that
// names no subcommand is taken as the image to annotate.
func (r *root) command(args []string) (runnable, error) {
	if err := r.fs.Parse(args); err != nil {
		return nil, err
	}
	if r.fs.NArg() < 1 {
		return nil, &UsageError{of: r}
	}
	if err := r.setup(); err != nil {
		return nil, err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]
	switch cmdName {
	case "annotate":
		return parseAnnotateCmd(subArgs, r)
	case "export":
		return parseExportCmd(subArgs, r)
	case "config":
		return parseConfigCmd(subArgs, r)
	case "version":
		return &versionCmd{root: r}, nil
	case "help":
		return nil, &UsageError{of: r}
	default:
		return parseAnnotateCmd(r.fs.Args(), r)
	}
}

func (r *root) Run(args []string) error {
	cmd, err := r.command(args)
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot(os.Stdout, os.Stderr)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.Is(err, flag.ErrHelp):
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
