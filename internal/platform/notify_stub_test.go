//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"testing"
)

func TestNotifyUnsupported(t *testing.T) {
	if err := Notify("celltagger", "Saved", Options{}); !errors.Is(err, errUnsupported) {
		t.Fatalf("expected errUnsupported, got %v", err)
	}
}
