package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/celltagger/internal/cellfile"
	"github.com/example/celltagger/internal/clipboard"
	"github.com/example/celltagger/internal/render"
)

type exportCmd struct {
	*root
	fs      *flag.FlagSet
	image   string
	labels  string
	output  string
	opacity float64
	border  float64
	toClip  bool
}

func (e *exportCmd) FlagSet() *flag.FlagSet { return e.fs }

func (e *exportCmd) Program() string { return e.root.program + " export" }

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	e := &exportCmd{root: r, fs: fs}
	fs.StringVar(&e.labels, "labels", "", "labels file to read (default <image>"+cellfile.Suffix+")")
	fs.StringVar(&e.output, "output", "", "PNG file to write, - for stdout (default <image>.labels.png)")
	fs.Float64Var(&e.opacity, "opacity", r.config.CellOpacity, "opacity of the label fill")
	fs.Float64Var(&e.border, "border", float64(r.config.BorderWidth), "grid line width, 0 to omit")
	fs.BoolVar(&e.toClip, "clipboard", false, "copy the PNG to the clipboard (needs a clipboard manager to outlive the process)")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: e}
	}
	e.image = fs.Arg(0)
	if e.labels == "" {
		e.labels = cellfile.PathFor(e.image)
	}
	if e.output == "" && !e.toClip {
		e.output = strings.TrimSuffix(e.image, filepath.Ext(e.image)) + ".labels.png"
	}
	return e, nil
}

func (e *exportCmd) Run() error {
	img, st, err := e.openSession(e.image, e.labels)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	opts := render.ExportOptions{
		Theme:       e.activeTheme,
		Opacity:     e.opacity,
		BorderWidth: e.border,
		Logger:      e.logger,
	}
	if err := render.Export(&buf, img, st.View(), opts); err != nil {
		return fmt.Errorf("export %s: %w", e.image, err)
	}

	if e.toClip {
		if err := clipboard.WritePNG(buf.Bytes()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		e.notifier.Copy(filepath.Base(e.image) + " labels")
		e.logger.Info("copied export to clipboard", "bytes", buf.Len())
	}

	switch e.output {
	case "":
	case "-":
		if _, err := e.stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	default:
		if err := os.WriteFile(e.output, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(e.stderr, "wrote %s\n", e.output)
	}
	return nil
}
