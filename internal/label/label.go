// Package label defines the closed set of cell labels and the sparse label map
// painted onto a grid.
package label

import (
	"errors"
	"fmt"
	"strings"
)

// Label is a categorical tag painted onto a cell.
type Label int

const (
	Ignore Label = iota
	Fire
	Smoke
	Other
)

// ErrUnknown reports a label name outside the closed set.
var ErrUnknown = errors.New("unknown label")

var names = [...]string{
	Ignore: "IGNORE",
	Fire:   "FIRE",
	Smoke:  "SMOKE",
	Other:  "OTHER",
}

// All returns every label in brush cycling order.
func All() []Label {
	return []Label{Ignore, Fire, Smoke, Other}
}

// Valid reports whether l is a member of the closed set.
func (l Label) Valid() bool { return l >= Ignore && l <= Other }

// String returns the persisted name of l.
func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return names[l]
}

// Next returns the label after l, wrapping around the closed set.
func (l Label) Next() Label { return l.step(1) }

// Prev returns the label before l, wrapping around the closed set.
func (l Label) Prev() Label { return l.step(-1) }

func (l Label) step(d int) Label {
	n := len(names)
	return Label(((int(l)+d)%n + n) % n)
}

// Lookup resolves an exact persisted name such as "FIRE".
func Lookup(name string) (Label, error) {
	for i, n := range names {
		if n == name {
			return Label(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Parse resolves a user supplied name case-insensitively. It is meant for
// flags and configuration, not for persisted cell files.
func Parse(name string) (Label, error) {
	return Lookup(strings.ToUpper(strings.TrimSpace(name)))
}
