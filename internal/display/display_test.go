package display

import (
	"errors"
	"image"
	"testing"
)

var layout = []Monitor{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(1920, 0, 3200, 800), Primary: true},
}

func TestFind(t *testing.T) {
	tests := []struct {
		selector string
		want     string
	}{
		{"", "HDMI-1"},
		{"primary", "eDP-1"},
		{"1", "eDP-1"},
		{"#0", "HDMI-1"},
		{"edp", "eDP-1"},
		{"  HDMI ", "HDMI-1"},
	}
	for _, tt := range tests {
		got, err := Find(layout, tt.selector)
		if err != nil {
			t.Errorf("Find(%q): %v", tt.selector, err)
			continue
		}
		if got.Name != tt.want {
			t.Errorf("Find(%q) = %s, want %s", tt.selector, got.Name, tt.want)
		}
	}
}

func TestFindErrors(t *testing.T) {
	if _, err := Find(nil, ""); !errors.Is(err, ErrNoMonitors) {
		t.Errorf("expected ErrNoMonitors, got %v", err)
	}
	for _, sel := range []string{"5", "-1", "dp-9"} {
		if _, err := Find(layout, sel); err == nil {
			t.Errorf("expected error for %q", sel)
		}
	}
}

func TestFindPrimaryFallsBackToFirst(t *testing.T) {
	mons := []Monitor{{Name: "a"}, {Name: "b"}}
	got, err := Find(mons, "primary")
	if err != nil || got.Name != "a" {
		t.Fatalf("got %v %v", got, err)
	}
}

func TestWindowSize(t *testing.T) {
	fallback := image.Pt(1024, 768)
	mon := layout[0]
	tests := []struct {
		name string
		mon  Monitor
		img  image.Point
		want image.Point
	}{
		{"small image", mon, image.Pt(400, 280), image.Pt(400, 400)},
		{"wide image", mon, image.Pt(4000, 700), image.Pt(1728, 972)},
		{"no monitor", Monitor{}, image.Pt(400, 280), fallback},
		{"no image", mon, image.Point{}, fallback},
		{"small monitor", Monitor{Rect: image.Rect(0, 0, 800, 600)}, image.Point{}, image.Pt(720, 540)},
	}
	for _, tt := range tests {
		if got := WindowSize(tt.mon, tt.img, 0.7, fallback); got != tt.want {
			t.Errorf("%s: WindowSize = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWindowHeightFor(t *testing.T) {
	for _, h := range []int{1, 7, 199, 200, 280, 701, 1080} {
		wh := WindowHeightFor(h, 0.7)
		if got := int(float64(wh)*0.7 + 0.5); got < h {
			t.Errorf("WindowHeightFor(%d) = %d holds only %d rows", h, wh, got)
		}
		if float64(wh-1)*0.7 >= float64(h) {
			t.Errorf("WindowHeightFor(%d) = %d is larger than needed", h, wh)
		}
	}
}
