//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New("desktop notifications are not supported on " + runtime.GOOS)

// Notify reports that no notification service exists on this platform.
func Notify(title, body string, opts Options) error {
	return errUnsupported
}
