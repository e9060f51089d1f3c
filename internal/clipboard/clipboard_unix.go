//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

func write(f format, data []byte) error {
	switch f {
	case fmtPNG:
		clipboard.Write(clipboard.FmtImage, data)
	default:
		clipboard.Write(clipboard.FmtText, data)
	}
	return nil
}
