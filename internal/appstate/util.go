package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"
	"unicode"

	"github.com/example/celltagger/internal/event"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
)

var (
	messageFaceOnce sync.Once
	messageFace     font.Face = basicfont.Face7x13
)

// largeFace returns the face used for transient messages, falling back to
// the panel face when the bundled font cannot be loaded.
func largeFace() font.Face {
	messageFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return
		}
		messageFace = face
	})
	return messageFace
}

func textWidth(face font.Face, s string) int {
	return (&font.Drawer{Face: face}).MeasureString(s).Ceil()
}

// drawText renders s with its baseline at (x, y).
func drawText(dst *image.RGBA, face font.Face, x, y int, s string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

// shortcutName renders a shortcut the way the help line shows it, for
// example "Ctrl+Z" or "a".
func shortcutName(k event.KeyShortcut) string {
	var b strings.Builder
	if k.Modifiers&key.ModControl != 0 {
		b.WriteString("Ctrl+")
	}
	if k.Modifiers&key.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if k.Modifiers&key.ModShift != 0 {
		b.WriteString("Shift+")
	}
	switch {
	case k.Code == key.CodeEscape:
		b.WriteString("Esc")
	case k.Rune > 0 && k.Modifiers != 0:
		b.WriteRune(unicode.ToUpper(k.Rune))
	case k.Rune > 0:
		b.WriteRune(k.Rune)
	default:
		b.WriteString("?")
	}
	return b.String()
}

// helpEntries formats each binding as "keys: description".
func helpEntries(bindings []event.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, bd := range bindings {
		names := make([]string, len(bd.Keys))
		for i, k := range bd.Keys {
			names[i] = shortcutName(k)
		}
		out = append(out, strings.Join(names, "/")+": "+bd.Help)
	}
	return out
}

// wrapEntries packs entries into lines no wider than maxWidth pixels.
// An entry wider than maxWidth gets a line of its own.
func wrapEntries(face font.Face, entries []string, maxWidth int) []string {
	const sep = "   "
	var lines []string
	var cur string
	for _, e := range entries {
		if cur == "" {
			cur = e
			continue
		}
		if textWidth(face, cur+sep+e) > maxWidth {
			lines = append(lines, cur)
			cur = e
			continue
		}
		cur += sep + e
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
