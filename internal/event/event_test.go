package event

import (
	"image"
	"testing"

	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/label"
	"github.com/stretchr/testify/assert"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

func press(r rune, mods key.Modifiers) key.Event {
	return key.Event{Rune: r, Code: key.CodeUnknown, Modifiers: mods, Direction: key.DirPress}
}

func TestKeyBindings(t *testing.T) {
	a := NewAdapter(func() label.Label { return label.Smoke })
	tests := []struct {
		name string
		ev   key.Event
		want Action
	}{
		{"toggle", press('t', 0), Action{Transition: grid.ToggleCells{}}},
		{"undo u", press('u', 0), Action{Transition: grid.Undo{}}},
		{"undo ctrl-z", press('z', key.ModControl), Action{Transition: grid.Undo{}}},
		{"undo control char", press(0x1a, key.ModControl), Action{Transition: grid.Undo{}}},
		{"redo r", press('r', 0), Action{Transition: grid.Redo{}}},
		{"redo ctrl-y", press('y', key.ModControl), Action{Transition: grid.Redo{}}},
		{"redo ctrl-shift-z", press('Z', key.ModControl|key.ModShift), Action{Transition: grid.Redo{}}},
		{"prev brush", press('a', 0), Action{Transition: grid.PrevBrush{}}},
		{"prev brush shifted", press('A', key.ModShift), Action{Transition: grid.PrevBrush{}}},
		{"next brush", press('d', 0), Action{Transition: grid.NextBrush{}}},
		{"fill current", press('f', 0), Action{Transition: grid.FillWithBrush{Label: label.Smoke}}},
		{"fill ignore", press('1', 0), Action{Transition: grid.FillWithBrush{Label: label.Ignore}}},
		{"fill other", press('4', 0), Action{Transition: grid.FillWithBrush{Label: label.Other}}},
		{"reset", press('x', 0), Action{Transition: grid.ResetCells{}}},
		{"save", press('s', key.ModControl), Action{Command: CommandSave}},
		{"copy", press('c', key.ModControl), Action{Command: CommandCopy}},
		{"quit", press('q', 0), Action{Command: CommandQuit}},
		{"escape", key.Event{Rune: -1, Code: key.CodeEscape, Direction: key.DirPress}, Action{Command: CommandQuit}},
		{"plain s", press('s', 0), Action{}},
		{"unbound", press('k', 0), Action{}},
		{"release", key.Event{Rune: 't', Direction: key.DirRelease}, Action{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Key(tc.ev))
		})
	}
}

func TestFillWithoutBrushProvider(t *testing.T) {
	a := NewAdapter(nil)
	assert.True(t, a.Key(press('f', 0)).Empty())
}

func TestBindingsDescribeEveryShortcut(t *testing.T) {
	a := NewAdapter(nil)
	seen := map[KeyShortcut]bool{}
	for _, b := range a.Bindings() {
		assert.NotEmpty(t, b.Help)
		assert.NotEmpty(t, b.Keys)
		for _, k := range b.Keys {
			assert.False(t, seen[k], "duplicate shortcut %+v", k)
			seen[k] = true
		}
	}
}

func TestPaintStroke(t *testing.T) {
	a := NewAdapter(nil, WithOrigin(image.Pt(10, 20)))

	assert.Equal(t, Action{Transition: grid.Move{X: 5, Y: 5}},
		a.Mouse(mouse.Event{X: 15, Y: 25}))
	assert.Equal(t, Action{Transition: grid.Press{X: 5, Y: 5}},
		a.Mouse(mouse.Event{X: 15, Y: 25, Button: mouse.ButtonLeft, Direction: mouse.DirPress}))
	assert.Equal(t, Action{Transition: grid.Drag{X: 30, Y: 0}},
		a.Mouse(mouse.Event{X: 40, Y: 20}))
	assert.True(t, a.Mouse(mouse.Event{X: 40, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}).Empty())
	assert.Equal(t, Action{Transition: grid.Move{X: 31, Y: 0}},
		a.Mouse(mouse.Event{X: 41, Y: 20}))
}

func TestPanWithRightButton(t *testing.T) {
	a := NewAdapter(nil)
	assert.Equal(t, Action{Transition: grid.DragGridPress{X: 3, Y: 4}},
		a.Mouse(mouse.Event{X: 3, Y: 4, Button: mouse.ButtonRight, Direction: mouse.DirPress}))
	// Painting is blocked while panning.
	assert.True(t, a.Mouse(mouse.Event{X: 3, Y: 4, Button: mouse.ButtonLeft, Direction: mouse.DirPress}).Empty())
	assert.Equal(t, Action{Transition: grid.DragGrid{X: 9, Y: 8}},
		a.Mouse(mouse.Event{X: 9, Y: 8}))
	assert.True(t, a.Mouse(mouse.Event{X: 9, Y: 8, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}).Empty())
	assert.Equal(t, Action{Transition: grid.DragGridRelease{}},
		a.Mouse(mouse.Event{X: 9, Y: 8, Button: mouse.ButtonRight, Direction: mouse.DirRelease}))
	assert.Equal(t, Action{Transition: grid.Move{X: 9, Y: 9}},
		a.Mouse(mouse.Event{X: 9, Y: 9}))
}

func TestPanWithShiftLeft(t *testing.T) {
	a := NewAdapter(nil)
	assert.Equal(t, Action{Transition: grid.DragGridPress{X: 1, Y: 1}},
		a.Mouse(mouse.Event{X: 1, Y: 1, Button: mouse.ButtonLeft, Modifiers: key.ModShift, Direction: mouse.DirPress}))
	assert.Equal(t, Action{Transition: grid.DragGridRelease{}},
		a.Mouse(mouse.Event{X: 1, Y: 1, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))
}

func TestWheel(t *testing.T) {
	a := NewAdapter(nil, WithPointerDelta(15))
	assert.Equal(t, Action{Transition: grid.ModifyPointerSize{Delta: 15}},
		a.Mouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}))
	assert.Equal(t, Action{Transition: grid.ModifyPointerSize{Delta: -15}},
		a.Mouse(mouse.Event{Button: mouse.ButtonWheelDown, Direction: mouse.DirStep}))
	assert.True(t, a.Mouse(mouse.Event{Button: mouse.ButtonWheelDown, Direction: mouse.DirRelease}).Empty())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "save", CommandSave.String())
	assert.Equal(t, "none", CommandNone.String())
}
