package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/label"
	"github.com/example/celltagger/internal/theme"
)

func newView(t *testing.T, size int, mutate func(s *grid.State)) grid.View {
	t.Helper()
	opts := grid.DefaultOptions()
	opts.CellSize = 50
	opts.PointerInitial = 30
	s, err := grid.New(size, size, opts)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	if mutate != nil {
		mutate(s)
	}
	return s.View()
}

func white(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestOverlayFillsLabelColour(t *testing.T) {
	th := theme.Default()
	v := newView(t, 100, func(s *grid.State) { s.Reduce(grid.FillWithBrush{Label: label.Fire}) })
	dst := white(100)
	NewOverlay(th, 1, 1).Draw(dst, image.Point{}, v)

	if got := dst.RGBAAt(75, 75); got != th.LabelFire {
		t.Fatalf("pixel = %+v, want %+v", got, th.LabelFire)
	}
}

func TestOverlayBlendsWithOpacity(t *testing.T) {
	th := theme.Default()
	v := newView(t, 100, nil)
	dst := white(100)
	NewOverlay(th, 0.5, 0).Draw(dst, image.Point{}, v)

	got := dst.RGBAAt(75, 75)
	want := th.LabelOther
	if !near(got.R, uint8((int(want.R)+255)/2), 2) || !near(got.G, uint8((int(want.G)+255)/2), 2) {
		t.Fatalf("blended pixel %+v not halfway between %+v and white", got, want)
	}
}

func TestOverlayHiddenCellsKeepsImage(t *testing.T) {
	v := newView(t, 100, func(s *grid.State) { s.Reduce(grid.ToggleCells{}) })
	dst := white(100)
	NewOverlay(theme.Default(), 1, 1).Draw(dst, image.Point{}, v)

	if got := dst.RGBAAt(75, 75); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("hidden cells should not tint the image, got %+v", got)
	}
	if got := dst.RGBAAt(75, 50); got != theme.Default().GridLine {
		t.Fatalf("grid line missing, got %+v", got)
	}
}

func TestOverlayPointerAndFocus(t *testing.T) {
	th := theme.Default()
	th.Pointer = color.RGBA{0, 0, 255, 255}
	v := newView(t, 100, func(s *grid.State) {
		s.Reduce(grid.ToggleCells{})
		s.Reduce(grid.Move{X: 75, Y: 75})
	})
	dst := white(100)
	NewOverlay(th, 1, 0).Draw(dst, image.Point{}, v)

	if got := dst.RGBAAt(90, 75); got != th.Pointer {
		t.Errorf("pointer circle missing at its rightmost point, got %+v", got)
	}
	if got := dst.RGBAAt(75, 50); got != th.FocusOutline {
		t.Errorf("focused cell outline missing, got %+v", got)
	}
	if got := dst.RGBAAt(25, 50); got == th.FocusOutline {
		t.Errorf("unfocused cell outlined")
	}
}

func TestOverlayRespectsOrigin(t *testing.T) {
	th := theme.Default()
	v := newView(t, 100, func(s *grid.State) { s.Reduce(grid.FillWithBrush{Label: label.Smoke}) })
	dst := white(140)
	NewOverlay(th, 1, 0).Draw(dst, image.Pt(40, 40), v)

	if got := dst.RGBAAt(20, 20); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("area before origin painted: %+v", got)
	}
	if got := dst.RGBAAt(130, 130); got != th.LabelSmoke {
		t.Errorf("shifted cell = %+v, want %+v", got, th.LabelSmoke)
	}
}

func TestExport(t *testing.T) {
	th := theme.Default()
	v := newView(t, 100, func(s *grid.State) {
		s.Reduce(grid.FillWithBrush{Label: label.Fire})
		s.Reduce(grid.Press{X: 75, Y: 75})
		s.Reduce(grid.NextBrush{})
		s.Reduce(grid.Press{X: 25, Y: 25})
	})
	var buf bytes.Buffer
	if err := Export(&buf, white(100), v, ExportOptions{Theme: th, Opacity: 1, BorderWidth: 0}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	check := func(x, y int, want color.RGBA) {
		t.Helper()
		got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		if !near(got.R, want.R, 3) || !near(got.G, want.G, 3) || !near(got.B, want.B, 3) {
			t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
		}
	}
	check(75, 75, th.LabelFire)
	check(25, 25, th.LabelSmoke)
}
