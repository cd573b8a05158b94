package terrain

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types. TGA has no magic number, so it is tried only after the
// registered formats fail.
const (
	tgaUncompressed = 2
	tgaRLE          = 10
	tgaHeaderSize   = 18
)

var errNotTGA = errors.New("not a true-color TGA")

// decodeTGA decodes uncompressed or RLE true-color TGA data, 24 or 32 bits
// per pixel, into a top-row-first image.
func decodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errNotTGA
	}
	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 || (imageType != tgaUncompressed && imageType != tgaRLE) {
		return nil, errNotTGA
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty TGA image")
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	r := tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		bpp:         bpp / 8,
		width:       width,
		height:      height,
		topToBottom: topToBottom,
	}
	var err error
	if imageType == tgaUncompressed {
		err = r.raw(width * height)
	} else {
		err = r.rle()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

// tgaReader writes pixels in file order, flipping rows of bottom-up images.
type tgaReader struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bpp         int
	width       int
	height      int
	n           int // pixels written
	topToBottom bool
}

func (r *tgaReader) pixel() (color.RGBA, error) {
	if r.pos+r.bpp > len(r.src) {
		return color.RGBA{}, fmt.Errorf("TGA pixel data truncated at pixel %d", r.n)
	}
	p := r.src[r.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	r.pos += r.bpp
	return c, nil
}

func (r *tgaReader) put(c color.RGBA) {
	x, y := r.n%r.width, r.n/r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.n++
}

func (r *tgaReader) raw(count int) error {
	for i := 0; i < count; i++ {
		c, err := r.pixel()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) rle() error {
	total := r.width * r.height
	for r.n < total {
		if r.pos >= len(r.src) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d", r.n)
		}
		packet := r.src[r.pos]
		r.pos++
		count := min(int(packet&0x7F)+1, total-r.n)

		if packet&0x80 == 0 {
			if err := r.raw(count); err != nil {
				return err
			}
			continue
		}
		c, err := r.pixel()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			r.put(c)
		}
	}
	return nil
}
