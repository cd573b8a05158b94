// Package terrain holds the voxel map grids, their toroidal samplers and the
// catalog that resolves map indices to image assets.
package terrain

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/Faultbox/voxel-space/pkg/math"
)

// ErrAssetDecode is returned when a height or colour asset is missing,
// corrupt, or has unusable dimensions.
var ErrAssetDecode = errors.New("map asset decode failed")

// HeightField is a square grid of heights in [0,255]. Side length is a power
// of two so any integer coordinate wraps with a mask.
type HeightField struct {
	Size    int
	Heights []uint8 // row-major, row = world Z
	mask    int
}

// NewHeightField wraps heights as a size×size field.
func NewHeightField(size int, heights []uint8) (*HeightField, error) {
	if !math.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: height field side %d is not a power of two", ErrAssetDecode, size)
	}
	if len(heights) != size*size {
		return nil, fmt.Errorf("%w: height field has %d cells, want %d", ErrAssetDecode, len(heights), size*size)
	}
	return &HeightField{Size: size, Heights: heights, mask: size - 1}, nil
}

// ColorField is a square grid of RGBA colours addressed like HeightField.
type ColorField struct {
	Size   int
	Colors []color.RGBA
	mask   int
}

// NewColorField wraps colours as a size×size field.
func NewColorField(size int, colors []color.RGBA) (*ColorField, error) {
	if !math.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: color field side %d is not a power of two", ErrAssetDecode, size)
	}
	if len(colors) != size*size {
		return nil, fmt.Errorf("%w: color field has %d cells, want %d", ErrAssetDecode, len(colors), size*size)
	}
	return &ColorField{Size: size, Colors: colors, mask: size - 1}, nil
}

// Map is a decoded height/colour pair of identical dimensions.
type Map struct {
	Index  int
	Height *HeightField
	Color  *ColorField
}

// NewMap pairs the two fields, rejecting mismatched dimensions.
func NewMap(index int, h *HeightField, c *ColorField) (*Map, error) {
	if h == nil || c == nil {
		return nil, fmt.Errorf("%w: missing grid", ErrAssetDecode)
	}
	if h.Size != c.Size {
		return nil, fmt.Errorf("%w: height side %d does not match color side %d", ErrAssetDecode, h.Size, c.Size)
	}
	return &Map{Index: index, Height: h, Color: c}, nil
}

// Size returns the side length of the map.
func (m *Map) Size() int {
	return m.Height.Size
}
