// Package present moves a finished frame buffer onto a display surface.
package present

import (
	"github.com/Faultbox/voxel-space/internal/engine/framebuffer"
)

// Presenter uploads a frame and shows it scaled to its viewport.
type Presenter interface {
	Present(buf *framebuffer.Buffer) error
	Close()
}

// Func adapts a function to the Presenter interface.
type Func func(buf *framebuffer.Buffer) error

// Present calls f(buf).
func (f Func) Present(buf *framebuffer.Buffer) error {
	return f(buf)
}

// Close does nothing.
func (f Func) Close() {}
