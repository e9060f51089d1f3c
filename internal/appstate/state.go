package appstate

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/example/celltagger/internal/cellfile"
	"github.com/example/celltagger/internal/clipboard"
	"github.com/example/celltagger/internal/display"
	"github.com/example/celltagger/internal/event"
	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/imageio"
	"github.com/example/celltagger/internal/notify"
	"github.com/example/celltagger/internal/render"
	"github.com/example/celltagger/internal/theme"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// messageDuration is how long a status message stays on screen.
const messageDuration = 2 * time.Second

// AppState owns one labelling session: the grid state, the source image and
// its on-screen thumbnail, plus everything needed to draw and save them.
type AppState struct {
	Image  *image.RGBA
	State  *grid.State
	Output string
	Title  string

	theme    *theme.Theme
	opacity  float64
	border   int
	delta    int
	winSize  image.Point
	log      *slog.Logger
	notifier *notify.Notifier
	copyText func(string) error
	now      func() time.Time

	overlay *render.Overlay
	adapter *event.Adapter

	thumb   *image.RGBA
	layout  layout
	buttons []*TextButton
	hover   int
	pressed int

	message      string
	messageUntil time.Time
	saved        bool

	onClose   func()
	closeOnce sync.Once
	err       error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the image being labelled.
func WithImage(img *image.RGBA) Option { return func(a *AppState) { a.Image = img } }

// WithState sets the grid state driven by the window.
func WithState(s *grid.State) Option { return func(a *AppState) { a.State = s } }

// WithOutput sets the labels file written on save.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithTheme sets the colours of the panel and the overlay.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithOverlay sets the label fill opacity and the grid line width.
func WithOverlay(opacity float64, border int) Option {
	return func(a *AppState) { a.opacity, a.border = opacity, border }
}

// WithPointerDelta sets how much one wheel step changes the pointer size.
func WithPointerDelta(d int) Option { return func(a *AppState) { a.delta = d } }

// WithWindowSize sets the initial window size.
func WithWindowSize(p image.Point) Option { return func(a *AppState) { a.winSize = p } }

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option { return func(a *AppState) { a.log = l } }

// WithNotifier sets the desktop notifier used after save and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithClipboard replaces the clipboard writer used by the copy command.
func WithClipboard(fn func(string) error) Option { return func(a *AppState) { a.copyText = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState. WithImage and WithState are required.
func New(opts ...Option) (*AppState, error) {
	a := &AppState{
		Title:    "celltagger",
		opacity:  0.5,
		border:   1,
		delta:    20,
		copyText: clipboard.WriteText,
		now:      time.Now,
		hover:    -1,
		pressed:  -1,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Image == nil || a.State == nil {
		return nil, fmt.Errorf("appstate: image and grid state are required")
	}
	if a.log == nil {
		a.log = slog.New(slog.DiscardHandler)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if a.winSize.X <= 0 || a.winSize.Y <= 0 {
		b := a.Image.Bounds()
		a.winSize = image.Pt(b.Dx(), display.WindowHeightFor(b.Dy(), CanvasShare))
	}
	a.overlay = render.NewOverlay(a.theme, a.opacity, a.border)
	a.adapter = event.NewAdapter(a.State.Brush, event.WithPointerDelta(a.delta))
	a.buttons = []*TextButton{
		{Label: "Save and close", Theme: a.theme, OnActivate: func() event.Action {
			return event.Action{Command: event.CommandSave}
		}},
		{Label: "Reset", Theme: a.theme, OnActivate: func() event.Action {
			return event.Action{Transition: grid.ResetCells{}}
		}},
	}
	a.Resize(a.winSize.X, a.winSize.Y)
	return a, nil
}

// Saved reports whether the session ended with a successful save.
func (a *AppState) Saved() bool { return a.saved }

// Resize lays the window out for a size of w × h pixels and rescales the
// displayed image to fit the canvas area.
func (a *AppState) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.winSize = image.Pt(w, h)
	a.layout = computeLayout(w, h)
	canvas := a.layout.canvas
	a.thumb = imageio.Thumbnail(a.Image, canvas.Dx(), canvas.Dy())
	tb := a.thumb.Bounds()
	a.adapter.SetOrigin(image.Pt(canvas.Min.X+(canvas.Dx()-tb.Dx())/2, canvas.Min.Y))
	a.reduce(grid.ResizeImage{W: tb.Dx(), H: tb.Dy()})
	a.placeButtons()
	a.log.Debug("resized", "window", a.winSize, "thumbnail", tb.Size())
}

// HandleMouse processes one mouse event. It reports whether the window
// needs repainting and whether the session is over.
func (a *AppState) HandleMouse(e mouse.Event) (repaint, done bool) {
	p := image.Pt(int(e.X), int(e.Y))
	if hover := a.buttonAt(p); hover != a.hover {
		a.hover = hover
		repaint = true
	}

	if e.Button == mouse.ButtonLeft && e.Modifiers&key.ModShift == 0 {
		switch e.Direction {
		case mouse.DirPress:
			if i := a.buttonAt(p); i >= 0 {
				a.pressed = i
				return true, false
			}
			if !p.In(a.imageRect()) {
				return repaint, false
			}
		case mouse.DirRelease:
			if a.pressed >= 0 {
				i := a.pressed
				a.pressed = -1
				if a.buttonAt(p) != i {
					return true, false
				}
				_, done = a.apply(a.buttons[i].Activate())
				return true, done
			}
		}
	}

	r, d := a.apply(a.adapter.Mouse(e))
	return repaint || r, d
}

// HandleKey processes one key event.
func (a *AppState) HandleKey(e key.Event) (repaint, done bool) {
	return a.apply(a.adapter.Key(e))
}

func (a *AppState) apply(act event.Action) (repaint, done bool) {
	if act.Transition != nil {
		a.reduce(act.Transition)
		repaint = true
	}
	switch act.Command {
	case event.CommandSave:
		if err := a.Save(); err != nil {
			a.log.Error("save failed", "path", a.Output, "err", err)
			a.flash(fmt.Sprintf("save failed: %v", err))
			return true, false
		}
		return true, true
	case event.CommandCopy:
		if err := a.Copy(); err != nil {
			a.log.Warn("copy failed", "err", err)
			a.flash(fmt.Sprintf("copy failed: %v", err))
		} else {
			a.flash("labels copied to clipboard")
		}
		return true, false
	case event.CommandQuit:
		a.log.Info("closed without saving")
		return false, true
	}
	return repaint, false
}

func (a *AppState) reduce(t grid.Transition) {
	start := a.now()
	a.State.Reduce(t)
	a.log.Debug("reduce", "transition", fmt.Sprintf("%T", t), "took", a.now().Sub(start))
}

func (a *AppState) document() (cellfile.Document, int, int) {
	doc := cellfile.Document{Offset: a.State.Offset(), Labels: a.State.Labels()}
	return doc, a.State.Columns(), a.State.Rows()
}

// Save writes the labels file and sends the save notification.
func (a *AppState) Save() error {
	if a.Output == "" {
		return fmt.Errorf("no output file")
	}
	doc, cols, rows := a.document()
	if err := cellfile.Save(a.Output, doc, cols, rows); err != nil {
		return err
	}
	a.saved = true
	a.log.Info("saved labels", "path", a.Output, "cells", cols*rows, "labelled", doc.Labels.Len())
	a.notifier.Save(a.Output, cols*rows)
	return nil
}

// Copy places the labels file contents on the clipboard.
func (a *AppState) Copy() error {
	doc, cols, rows := a.document()
	if err := a.copyText(cellfile.Text(doc, cols, rows)); err != nil {
		return err
	}
	a.notifier.Copy(a.Output)
	return nil
}

func (a *AppState) flash(msg string) {
	a.message = msg
	a.messageUntil = a.now().Add(messageDuration)
}

// imageRect is the on-screen rectangle of the displayed image.
func (a *AppState) imageRect() image.Rectangle {
	return a.thumb.Bounds().Sub(a.thumb.Bounds().Min).Add(a.adapter.Origin())
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}
