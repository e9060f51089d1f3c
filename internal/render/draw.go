package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if p := image.Pt(x+dx, y+dy); p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// drawLine rasterises a Bresenham line.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawRect outlines rect; the outline lies inside the rectangle.
func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	if rect.Empty() {
		return
	}
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// fillAlpha blends col over rect at the given opacity.
func fillAlpha(img *image.RGBA, rect image.Rectangle, col color.RGBA, opacity float64) {
	a := uint8(math.Round(clamp01(opacity) * 255))
	if a == 0 {
		return
	}
	col.A = 255
	draw.DrawMask(img, rect, image.NewUniform(col), image.Point{}, image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Over)
}

// drawDashedCircle walks the circumference in one pixel steps, drawing dash
// pixels and skipping gap pixels.
func drawDashedCircle(img *image.RGBA, cx, cy, r, dash, gap, thick int, col color.Color) {
	if r <= 0 {
		return
	}
	period := dash + gap
	steps := int(math.Ceil(2 * math.Pi * float64(r)))
	for i := 0; i < steps; i++ {
		if period > 0 && i%period >= dash {
			continue
		}
		theta := float64(i) / float64(r)
		x := cx + int(math.Round(float64(r)*math.Cos(theta)))
		y := cy + int(math.Round(float64(r)*math.Sin(theta)))
		setThickPixel(img, x, y, thick, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
