package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/celltagger/internal/event"
	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/theme"
	"golang.org/x/image/font/basicfont"
)

const (
	// CanvasShare is the fraction of the window height given to the image.
	CanvasShare = 0.7

	panelPadding = 6
	lineHeight   = 16
	swatchSize   = 14
	buttonHeight = 22
	buttonGap    = 8
)

var panelFace = basicfont.Face7x13

type layout struct {
	canvas image.Rectangle
	panel  image.Rectangle
}

func computeLayout(w, h int) layout {
	canvasH := max(int(float64(h)*CanvasShare+0.5), 1)
	return layout{
		canvas: image.Rect(0, 0, w, canvasH),
		panel:  image.Rect(0, canvasH, w, max(h, canvasH)),
	}
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive panel element. Activate returns the
// action the click stands for.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate() event.Action
}

// TextButton is a labelled push button.
type TextButton struct {
	Label      string
	Theme      *theme.Theme
	OnActivate func() event.Action
	rect       image.Rectangle
}

var _ Button = (*TextButton)(nil)

func (b *TextButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := b.Theme.ButtonBackground
	switch state {
	case StateHover:
		bg = b.Theme.ButtonBackgroundHover
	case StatePressed:
		bg = b.Theme.ButtonBackgroundPress
	}
	fillRect(dst, b.rect, bg)
	strokeRect(dst, b.rect, b.Theme.ButtonBorder)
	tx := b.rect.Min.X + (b.rect.Dx()-textWidth(panelFace, b.Label))/2
	drawText(dst, panelFace, tx, b.rect.Min.Y+15, b.Label, b.Theme.ButtonText)
}

func (b *TextButton) Rect() image.Rectangle { return b.rect }

func (b *TextButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *TextButton) Activate() event.Action {
	if b.OnActivate == nil {
		return event.Action{}
	}
	return b.OnActivate()
}

// placeButtons lays the buttons out left to right on the panel's second row.
func (a *AppState) placeButtons() {
	x := a.layout.panel.Min.X + panelPadding
	y := a.layout.panel.Min.Y + panelPadding + lineHeight + panelPadding
	for _, b := range a.buttons {
		w := textWidth(panelFace, b.Label) + 16
		b.SetRect(image.Rect(x, y, x+w, y+buttonHeight))
		x += w + buttonGap
	}
}

func (a *AppState) buttonAt(p image.Point) int {
	for i, b := range a.buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

// statusLine describes the brush and the history position.
func statusLine(v grid.View) string {
	s := v.Brush.String()
	if !v.ShowCells {
		s += " (cells are hidden)"
	}
	return fmt.Sprintf("%s   history %d/%d   pointer %dpx", s, v.HistoryIndex+1, v.HistoryLen, v.PointerSize)
}

// Render draws the whole window into dst.
func (a *AppState) Render(dst *image.RGBA) {
	t := a.theme
	fillRect(dst, dst.Bounds(), t.Background)

	origin := a.adapter.Origin()
	draw.Draw(dst, a.imageRect(), a.thumb, a.thumb.Bounds().Min, draw.Src)
	v := a.State.View()
	a.overlay.Draw(dst, origin, v)

	a.drawPanel(dst, v)
	a.drawMessage(dst)
}

func (a *AppState) drawPanel(dst *image.RGBA, v grid.View) {
	t := a.theme
	panel := a.layout.panel
	fillRect(dst, panel, t.PanelBackground)

	x := panel.Min.X + panelPadding
	y := panel.Min.Y + panelPadding
	swatch := image.Rect(x, y+1, x+swatchSize, y+1+swatchSize)
	fillRect(dst, swatch, t.LabelColor(v.Brush))
	strokeRect(dst, swatch, t.ButtonBorder)
	drawText(dst, panelFace, swatch.Max.X+panelPadding, y+12, statusLine(v), t.Foreground)

	for i, b := range a.buttons {
		state := StateDefault
		switch {
		case i == a.pressed:
			state = StatePressed
		case i == a.hover:
			state = StateHover
		}
		b.Draw(dst, state)
	}

	y += lineHeight + panelPadding + buttonHeight + panelPadding + 12
	lines := wrapEntries(panelFace, helpEntries(a.adapter.Bindings()), panel.Dx()-2*panelPadding)
	lines = append(lines, "left button paints, right or middle button (or shift+left) moves the grid, wheel resizes the brush")
	for _, line := range lines {
		if y > panel.Max.Y {
			break
		}
		drawText(dst, panelFace, x, y, line, t.Foreground)
		y += lineHeight
	}
}

func (a *AppState) drawMessage(dst *image.RGBA) {
	if a.message == "" || !a.now().Before(a.messageUntil) {
		return
	}
	face := largeFace()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	w := textWidth(face, a.message)
	b := dst.Bounds()
	px := b.Min.X + (b.Dx()-w)/2
	py := a.layout.canvas.Min.Y + (a.layout.canvas.Dy()-ascent-descent)/2 + ascent
	box := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	draw.Draw(dst, box, image.NewUniform(color.RGBA{255, 255, 255, 230}), image.Point{}, draw.Over)
	strokeRect(dst, box, color.Black)
	drawText(dst, face, px, py, a.message, color.Black)
}
