//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard is not supported on this platform")

func ensureInit() error { return errUnsupported }

func write(format, []byte) error { return errUnsupported }
