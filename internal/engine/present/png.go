package present

import (
	"fmt"

	"github.com/Faultbox/voxel-space/internal/engine/debug"
	"github.com/Faultbox/voxel-space/internal/engine/framebuffer"
)

// PNG writes every presented frame to a numbered PNG file.
type PNG struct {
	capture *debug.ScreenshotCapture
	written []string
}

// NewPNG writes frames into dir with the given file prefix.
func NewPNG(dir, prefix string) *PNG {
	return &PNG{capture: debug.NewScreenshotCapture(dir, prefix)}
}

// Present saves buf.
func (p *PNG) Present(buf *framebuffer.Buffer) error {
	path, err := p.capture.CaptureFrame(buf.Image())
	if err != nil {
		return fmt.Errorf("png presenter: %w", err)
	}
	p.written = append(p.written, path)
	return nil
}

// Written returns the paths of all saved frames.
func (p *PNG) Written() []string {
	return p.written
}

// Close does nothing.
func (p *PNG) Close() {}
