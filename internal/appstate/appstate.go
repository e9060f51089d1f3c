// Package appstate runs the labelling window: it feeds window events to the
// grid state and paints the image, the overlay and the control panel.
package appstate

import (
	"fmt"
	"image"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Run opens the window and blocks until it closes.
func (a *AppState) Run() error {
	driver.Main(a.Main)
	return a.err
}

// Main drives the window on s. It returns when the user saves, quits or
// closes the window.
func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()

	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  a.winSize.X,
		Height: a.winSize.Y,
		Title:  a.Title,
	})
	if err != nil {
		a.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()

	for {
		var repaint, done bool
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				a.log.Info("window closed")
				return
			}
		case size.Event:
			a.Resize(e.WidthPx, e.HeightPx)
			repaint = true
		case paint.Event:
			a.drawFrame(s, w)
		case mouse.Event:
			repaint, done = a.HandleMouse(e)
		case key.Event:
			repaint, done = a.HandleKey(e)
		case error:
			a.log.Error("window event", "err", e)
		}
		if done {
			return
		}
		if repaint {
			w.Send(paint.Event{})
		}
	}
}

func (a *AppState) drawFrame(s screen.Screen, w screen.Window) {
	b, err := s.NewBuffer(a.winSize)
	if err != nil {
		a.log.Error("new buffer", "err", err)
		return
	}
	defer b.Release()

	a.Render(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
