// Package framebuffer provides the persistent CPU pixel buffer the voxel
// renderer draws into before a presenter uploads it.
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxPixels bounds the render resolution. Anything larger is treated as an
// allocation failure rather than attempted.
const MaxPixels = 4096 * 4096

// ErrAllocation is returned when a buffer of the requested size cannot be created.
var ErrAllocation = errors.New("frame buffer allocation failed")

// Transparent is the clear value written to every pixel at frame start.
var Transparent = color.RGBA{}

// Buffer is a W×H RGBA pixel array with a top-left origin.
type Buffer struct {
	img    *image.RGBA
	width  int
	height int
}

// New allocates a buffer with the specified dimensions.
func New(width, height int) (*Buffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}

	return &Buffer{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}, nil
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Len returns the number of pixels, always width*height.
func (b *Buffer) Len() int {
	return len(b.img.Pix) / 4
}

// Clear sets every pixel to Transparent.
func (b *Buffer) Clear() {
	clear(b.img.Pix)
}

// FillSpan writes c to rows [y0, y1) of column x. Rows are clamped to the
// buffer; an empty or out-of-range span writes nothing.
func (b *Buffer) FillSpan(x, y0, y1 int, c color.RGBA) {
	if x < 0 || x >= b.width {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > b.height {
		y1 = b.height
	}
	stride := b.img.Stride
	pix := b.img.Pix
	for i := y0*stride + x*4; y0 < y1; y0, i = y0+1, i+stride {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

// Set writes a single pixel; out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.img.SetRGBA(x, y, c)
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) color.RGBA {
	return b.img.RGBAAt(x, y)
}

// Pix returns the raw RGBA bytes, row-major with a stride of width*4.
func (b *Buffer) Pix() []byte {
	return b.img.Pix
}

// Image exposes the buffer as an image without copying.
func (b *Buffer) Image() *image.RGBA {
	return b.img
}

// Release drops the pixel storage. The buffer must not be used afterwards.
func (b *Buffer) Release() {
	b.img = &image.RGBA{}
	b.width = 0
	b.height = 0
}
