package terrain

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // map assets ship as GIF
	_ "image/png"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
)

// DecodeHeight decodes an image and takes the red channel as height.
func DecodeHeight(data []byte) (*HeightField, error) {
	rgba, err := decodeSquare(data)
	if err != nil {
		return nil, err
	}

	size := rgba.Bounds().Dx()
	heights := make([]uint8, size*size)
	for z := 0; z < size; z++ {
		row := rgba.Pix[z*rgba.Stride:]
		for x := 0; x < size; x++ {
			heights[z*size+x] = row[x*4]
		}
	}
	return NewHeightField(size, heights)
}

// DecodeColor decodes an image into a colour field.
func DecodeColor(data []byte) (*ColorField, error) {
	rgba, err := decodeSquare(data)
	if err != nil {
		return nil, err
	}

	size := rgba.Bounds().Dx()
	colors := make([]color.RGBA, size*size)
	for z := 0; z < size; z++ {
		row := rgba.Pix[z*rgba.Stride:]
		for x := 0; x < size; x++ {
			i := x * 4
			colors[z*size+x] = color.RGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}
		}
	}
	return NewColorField(size, colors)
}

// decodeSquare decodes any registered format into a zero-origin RGBA image
// and checks that it is square.
func decodeSquare(data []byte) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		var tgaErr error
		if img, tgaErr = decodeTGA(data); tgaErr == nil {
			format, err = "tga", nil
		} else if !errors.Is(tgaErr, errNotTGA) {
			err = tgaErr
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetDecode, err)
	}

	b := img.Bounds()
	if b.Dx() != b.Dy() || b.Dx() == 0 {
		return nil, fmt.Errorf("%w: %s image is %dx%d, want square", ErrAssetDecode, format, b.Dx(), b.Dy())
	}

	rgba, ok := img.(*image.RGBA)
	if ok && b.Min == (image.Point{}) {
		return rgba, nil
	}

	rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}
