package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/example/celltagger/internal/appstate"
	"github.com/example/celltagger/internal/cellfile"
	"github.com/example/celltagger/internal/clipboard"
)

type annotateCmd struct {
	*root
	fs     *flag.FlagSet
	image  string
	output string
}

func (a *annotateCmd) FlagSet() *flag.FlagSet { return a.fs }

func (a *annotateCmd) Program() string { return a.root.program + " annotate" }

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	a := &annotateCmd{root: r, fs: fs}
	fs.StringVar(&a.output, "output", "", "labels file to write (default <image>"+cellfile.Suffix+")")
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: a}
	}
	a.image = fs.Arg(0)
	if a.output == "" {
		a.output = cellfile.PathFor(a.image)
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	img, st, err := a.openSession(a.image, a.output)
	if err != nil {
		return err
	}
	win := a.windowSize(img.Bounds().Size())
	a.logger.Debug("opening window", "image", a.image, "output", a.output, "size", win)

	app, err := appstate.New(
		appstate.WithImage(img),
		appstate.WithState(st),
		appstate.WithOutput(a.output),
		appstate.WithTitle(fmt.Sprintf("celltagger - %s", filepath.Base(a.image))),
		appstate.WithTheme(a.activeTheme),
		appstate.WithOverlay(a.config.CellOpacity, a.config.BorderWidth),
		appstate.WithPointerDelta(a.config.PointerDelta),
		appstate.WithWindowSize(win),
		appstate.WithLogger(a.logger),
		appstate.WithNotifier(a.notifier),
		appstate.WithClipboard(clipboard.WriteText),
	)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return err
	}
	if !app.Saved() {
		a.logger.Info("closed without saving", "image", a.image)
	}
	return nil
}
