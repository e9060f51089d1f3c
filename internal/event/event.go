// Package event turns window system input into grid transitions and
// application commands.
package event

import (
	"image"
	"unicode"

	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/label"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// Command is an application level request that the grid state does not
// handle itself.
type Command int

const (
	CommandNone Command = iota
	// CommandSave writes the labels file and closes the window.
	CommandSave
	// CommandQuit closes the window without saving.
	CommandQuit
	// CommandCopy places the labels file contents on the clipboard.
	CommandCopy
)

func (c Command) String() string {
	switch c {
	case CommandSave:
		return "save"
	case CommandQuit:
		return "quit"
	case CommandCopy:
		return "copy"
	}
	return "none"
}

// Action is the outcome of one input event. Either field may be empty.
type Action struct {
	Transition grid.Transition
	Command    Command
}

// Empty reports whether the event had no effect.
func (a Action) Empty() bool { return a.Transition == nil && a.Command == CommandNone }

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

const modMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// Binding documents a shortcut group for the help text.
type Binding struct {
	Keys []KeyShortcut
	Help string
}

type binding struct {
	Binding
	act func(a *Adapter) Action
}

// Adapter converts mouse and key events. It tracks which buttons are held
// so that motion can be classified as painting, panning or hovering.
type Adapter struct {
	origin image.Point
	delta  int
	brush  func() label.Label

	painting bool
	panning  mouse.Button

	bindings []binding
	keymap   map[KeyShortcut]int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithOrigin sets the canvas position of the image's top-left corner.
func WithOrigin(p image.Point) Option { return func(a *Adapter) { a.origin = p } }

// WithPointerDelta sets how much one wheel step changes the pointer size.
func WithPointerDelta(d int) Option { return func(a *Adapter) { a.delta = d } }

// NewAdapter creates an Adapter. brush reports the label the "fill" shortcut
// should use.
func NewAdapter(brush func() label.Label, opts ...Option) *Adapter {
	a := &Adapter{delta: 20, brush: brush}
	for _, o := range opts {
		o(a)
	}
	a.register()
	return a
}

// SetOrigin moves the image origin, for example after the layout changed.
func (a *Adapter) SetOrigin(p image.Point) { a.origin = p }

// Origin returns the image origin on the canvas.
func (a *Adapter) Origin() image.Point { return a.origin }

func (a *Adapter) register() {
	a.keymap = map[KeyShortcut]int{}
	add := func(help string, keys []KeyShortcut, fn func(a *Adapter) Action) {
		a.bindings = append(a.bindings, binding{Binding: Binding{Keys: keys, Help: help}, act: fn})
		for _, k := range keys {
			a.keymap[k] = len(a.bindings) - 1
		}
	}
	transition := func(t grid.Transition) func(*Adapter) Action {
		return func(*Adapter) Action { return Action{Transition: t} }
	}
	command := func(c Command) func(*Adapter) Action {
		return func(*Adapter) Action { return Action{Command: c} }
	}

	add("previous brush", []KeyShortcut{{Rune: 'a'}}, transition(grid.PrevBrush{}))
	add("next brush", []KeyShortcut{{Rune: 'd'}}, transition(grid.NextBrush{}))
	add("toggle cells", []KeyShortcut{{Rune: 't'}}, transition(grid.ToggleCells{}))
	add("undo", []KeyShortcut{{Rune: 'u'}, {Rune: 'z', Modifiers: key.ModControl}}, transition(grid.Undo{}))
	add("redo", []KeyShortcut{
		{Rune: 'r'},
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, transition(grid.Redo{}))
	add("fill with brush", []KeyShortcut{{Rune: 'f'}}, func(a *Adapter) Action {
		if a.brush == nil {
			return Action{}
		}
		return Action{Transition: grid.FillWithBrush{Label: a.brush()}}
	})
	for i, l := range label.All() {
		add("fill with "+l.String(), []KeyShortcut{{Rune: rune('1' + i)}}, transition(grid.FillWithBrush{Label: l}))
	}
	add("reset cells", []KeyShortcut{{Rune: 'x'}}, transition(grid.ResetCells{}))
	add("save and close", []KeyShortcut{{Rune: 's', Modifiers: key.ModControl}}, command(CommandSave))
	add("copy labels", []KeyShortcut{{Rune: 'c', Modifiers: key.ModControl}}, command(CommandCopy))
	add("quit without saving", []KeyShortcut{{Rune: 'q'}, {Code: key.CodeEscape}}, command(CommandQuit))
}

// Bindings lists the keyboard shortcuts in registration order.
func (a *Adapter) Bindings() []Binding {
	out := make([]Binding, len(a.bindings))
	for i, b := range a.bindings {
		out[i] = b.Binding
	}
	return out
}

// Key translates a key event. Only presses trigger actions.
func (a *Adapter) Key(e key.Event) Action {
	if e.Direction != key.DirPress {
		return Action{}
	}
	ks := KeyShortcut{Modifiers: e.Modifiers & modMask}
	switch {
	case e.Code == key.CodeEscape:
		ks.Code = key.CodeEscape
	case e.Rune > 0 && e.Rune < 0x20 && ks.Modifiers&key.ModControl != 0:
		// Some drivers report Ctrl+letter as the ASCII control character.
		ks.Rune = 'a' + e.Rune - 1
	case e.Rune > 0:
		ks.Rune = unicode.ToLower(e.Rune)
	default:
		ks.Code = e.Code
	}
	idx, ok := a.keymap[ks]
	if !ok && ks.Modifiers&key.ModShift != 0 {
		ks.Modifiers &^= key.ModShift
		idx, ok = a.keymap[ks]
	}
	if !ok {
		return Action{}
	}
	return a.bindings[idx].act(a)
}

// Mouse translates a mouse event. The left button paints; the right and
// middle buttons, or shift with the left button, pan the grid; the wheel
// resizes the brush.
func (a *Adapter) Mouse(e mouse.Event) Action {
	x := int(e.X) - a.origin.X
	y := int(e.Y) - a.origin.Y

	switch e.Button {
	case mouse.ButtonWheelUp:
		if e.Direction == mouse.DirRelease {
			return Action{}
		}
		return Action{Transition: grid.ModifyPointerSize{Delta: a.delta}}
	case mouse.ButtonWheelDown:
		if e.Direction == mouse.DirRelease {
			return Action{}
		}
		return Action{Transition: grid.ModifyPointerSize{Delta: -a.delta}}
	}

	switch e.Direction {
	case mouse.DirPress:
		if a.panning != mouse.ButtonNone || a.painting {
			return Action{}
		}
		switch {
		case e.Button == mouse.ButtonRight, e.Button == mouse.ButtonMiddle,
			e.Button == mouse.ButtonLeft && e.Modifiers&key.ModShift != 0:
			a.panning = e.Button
			return Action{Transition: grid.DragGridPress{X: x, Y: y}}
		case e.Button == mouse.ButtonLeft:
			a.painting = true
			return Action{Transition: grid.Press{X: x, Y: y}}
		}
	case mouse.DirRelease:
		switch {
		case a.panning != mouse.ButtonNone && e.Button == a.panning:
			a.panning = mouse.ButtonNone
			return Action{Transition: grid.DragGridRelease{}}
		case a.painting && e.Button == mouse.ButtonLeft:
			a.painting = false
		}
	case mouse.DirNone:
		switch {
		case a.panning != mouse.ButtonNone:
			return Action{Transition: grid.DragGrid{X: x, Y: y}}
		case a.painting:
			return Action{Transition: grid.Drag{X: x, Y: y}}
		default:
			return Action{Transition: grid.Move{X: x, Y: y}}
		}
	}
	return Action{}
}
