package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/celltagger/internal/cellfile"
	"github.com/example/celltagger/internal/geom"
	"github.com/example/celltagger/internal/label"
	"github.com/example/celltagger/internal/theme"
)

// isolate keeps the user's configuration out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("CELLTAGGER_THEME", "")
	return dir
}

func newTestRoot() (*root, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return newRoot(&stdout, &stderr), &stdout, &stderr
}

func TestResolveThemeName(t *testing.T) {
	tests := []struct {
		cli, env, cfg, want string
	}{
		{"dark", "light", "high-contrast", "dark"},
		{"", "light", "high-contrast", "light"},
		{"", " ", "high-contrast", "high-contrast"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		if got := resolveThemeName(tt.cli, tt.env, tt.cfg); got != tt.want {
			t.Errorf("resolveThemeName(%q, %q, %q) = %q, want %q", tt.cli, tt.env, tt.cfg, got, tt.want)
		}
	}
}

func TestThemeFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("CELLTAGGER_THEME", "light")
	r, _, _ := newTestRoot()
	if _, err := r.command([]string{"version"}); err != nil {
		t.Fatalf("command: %v", err)
	}
	if r.activeTheme.Name != "Light" {
		t.Fatalf("expected light theme, got %q", r.activeTheme.Name)
	}

	r, _, stderr := newTestRoot()
	if _, err := r.command([]string{"-theme", "no-such-theme", "version"}); err != nil {
		t.Fatalf("command: %v", err)
	}
	if r.activeTheme.Name != theme.Default().Name {
		t.Fatalf("expected default theme, got %q", r.activeTheme.Name)
	}
	if !strings.Contains(stderr.String(), "failed to load theme") {
		t.Fatalf("expected a warning, got %q", stderr.String())
	}
}

func TestNoArgumentsIsUsageError(t *testing.T) {
	isolate(t)
	r, _, _ := newTestRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Commands:") || !strings.Contains(uerr.Error(), "-cell-size") {
		t.Fatalf("unexpected help:\n%s", uerr.Error())
	}
}

func TestHelpFlag(t *testing.T) {
	isolate(t)
	r, _, stderr := newTestRoot()
	if err := r.Run([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: celltagger") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}

	r, _, stderr = newTestRoot()
	if err := r.Run([]string{"export", "-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "-clipboard") {
		t.Fatalf("expected export flags, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Without a clipboard manager") {
		t.Fatalf("expected the clipboard lifetime note, got %q", stderr.String())
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	r, stdout, _ := newTestRoot()
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := stdout.String(); got != "celltagger version dev\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestConfigPrintAppliesFlags(t *testing.T) {
	isolate(t)
	r, stdout, _ := newTestRoot()
	if err := r.Run([]string{"-cell-size", "64", "-default-label", "smoke", "config", "print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	for _, want := range []string{"cell_size = 64", "default_label = SMOKE"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("expected %q in\n%s", want, stdout.String())
		}
	}
}

func TestConfigSave(t *testing.T) {
	dir := isolate(t)
	r, _, stderr := newTestRoot()
	if err := r.Run([]string{"-cell-size", "33", "-notify-save", "config", "save"}); err != nil {
		t.Fatalf("config save: %v", err)
	}
	path := filepath.Join(dir, "xdg", "celltagger", "config.rc")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "cell_size = 33") || !strings.Contains(string(data), "save = true") {
		t.Fatalf("unexpected config:\n%s", data)
	}
	if !strings.Contains(stderr.String(), path) {
		t.Fatalf("expected path in %q", stderr.String())
	}

	r, stdout, _ := newTestRoot()
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	if !strings.Contains(stdout.String(), "cell_size = 33") {
		t.Fatalf("saved config was not loaded:\n%s", stdout.String())
	}
}

func TestConfigUnknownSubcommand(t *testing.T) {
	isolate(t)
	r, _, _ := newTestRoot()
	err := r.Run([]string{"config", "dump"})
	if err == nil || !strings.Contains(err.Error(), "unknown config command: dump") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestBadFlagsAreRejected(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{
		{"-default-label", "lava", "version"},
		{"-cell-size", "0", "version"},
	} {
		r, _, _ := newTestRoot()
		if err := r.Run(args); err == nil {
			t.Errorf("expected %v to fail", args)
		}
	}
}

func TestParseAnnotate(t *testing.T) {
	isolate(t)
	r, _, _ := newTestRoot()
	cmd, err := r.command([]string{"annotate", filepath.Join("shots", "frame.jpg")})
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	a, ok := cmd.(*annotateCmd)
	if !ok {
		t.Fatalf("expected *annotateCmd, got %T", cmd)
	}
	if want := filepath.Join("shots", "frame.cells.txt"); a.output != want {
		t.Errorf("output %q, want %q", a.output, want)
	}

	r, _, _ = newTestRoot()
	cmd, err = r.command([]string{"frame.png"})
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if a, ok := cmd.(*annotateCmd); !ok || a.image != "frame.png" {
		t.Fatalf("bare image should open the annotator, got %#v", cmd)
	}

	r, _, _ = newTestRoot()
	if _, err := r.command([]string{"annotate"}); err == nil {
		t.Fatal("expected annotate without an image to fail")
	}
}

func TestParseExportDefaults(t *testing.T) {
	isolate(t)
	r, _, _ := newTestRoot()
	cmd, err := r.command([]string{"export", "frame.png"})
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	e := cmd.(*exportCmd)
	if e.labels != "frame.cells.txt" || e.output != "frame.labels.png" {
		t.Errorf("unexpected defaults: labels %q output %q", e.labels, e.output)
	}
	if e.opacity != r.config.CellOpacity || e.border != float64(r.config.BorderWidth) {
		t.Errorf("expected config defaults, got opacity %v border %v", e.opacity, e.border)
	}
}

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -3 && d <= 3
}

func TestExport(t *testing.T) {
	dir := isolate(t)
	imgPath := filepath.Join(dir, "frame.png")
	writeImage(t, imgPath, 200, 100)

	labels := label.NewMap(label.Other).Set(geom.Cell{Col: 1, Row: 0}, label.Fire)
	if err := cellfile.Save(cellfile.PathFor(imgPath), cellfile.Document{Labels: labels}, 4, 2); err != nil {
		t.Fatalf("save labels: %v", err)
	}

	out := filepath.Join(dir, "out.png")
	r, _, _ := newTestRoot()
	args := []string{"-cell-size", "50", "export", "-opacity", "1", "-border", "0", "-output", out, imgPath}
	if err := r.Run(args); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Size() != image.Pt(200, 100) {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	th := theme.Default()
	check := func(x, y int, want color.RGBA) {
		t.Helper()
		got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) {
			t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
		}
	}
	check(75, 25, th.LabelFire)
	check(25, 25, th.LabelOther)
	check(175, 75, th.LabelOther)
}

func TestExportToStdout(t *testing.T) {
	dir := isolate(t)
	imgPath := filepath.Join(dir, "frame.png")
	writeImage(t, imgPath, 100, 100)

	r, stdout, _ := newTestRoot()
	if err := r.Run([]string{"export", "-output", "-", imgPath}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := png.Decode(stdout); err != nil {
		t.Fatalf("stdout is not a PNG: %v", err)
	}
}

func TestExportRejectsUnknownLabel(t *testing.T) {
	dir := isolate(t)
	imgPath := filepath.Join(dir, "frame.png")
	writeImage(t, imgPath, 100, 100)
	if err := os.WriteFile(cellfile.PathFor(imgPath), []byte("0,0,LAVA\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, _, _ := newTestRoot()
	err := r.Run([]string{"export", "-output", filepath.Join(dir, "out.png"), imgPath})
	if !errors.Is(err, label.ErrUnknown) {
		t.Fatalf("expected unknown label error, got %v", err)
	}
}
