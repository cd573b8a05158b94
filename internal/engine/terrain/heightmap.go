package terrain

import (
	"image/color"

	"github.com/Faultbox/voxel-space/pkg/math"
)

// At returns the height of the cell containing integer coordinate (x, z),
// wrapping toroidally.
func (h *HeightField) At(x, z int) uint8 {
	return h.Heights[(z&h.mask)*h.Size+(x&h.mask)]
}

// Bilinear returns the interpolated height at a world position using the
// four wrapped corner cells around it.
func (h *HeightField) Bilinear(x, z float32) float32 {
	height, _, _ := h.bilinear(x, z)
	return height
}

// bilinear also returns the wrapped base cell so callers can reuse it for a
// nearest-cell colour lookup.
func (h *HeightField) bilinear(x, z float32) (float32, int, int) {
	floorX := math.Floor(x)
	floorZ := math.Floor(z)
	fx := x - floorX
	fz := z - floorZ

	x0 := int(floorX) & h.mask
	z0 := int(floorZ) & h.mask
	x1 := (x0 + 1) & h.mask
	z1 := (z0 + 1) & h.mask

	row0 := z0 * h.Size
	row1 := z1 * h.Size
	h00 := float32(h.Heights[row0+x0])
	h10 := float32(h.Heights[row0+x1])
	h01 := float32(h.Heights[row1+x0])
	h11 := float32(h.Heights[row1+x1])

	height := h00*(1-fx)*(1-fz) +
		h10*fx*(1-fz) +
		h01*(1-fx)*fz +
		h11*fx*fz

	return height, x0, z0
}

// At returns the colour of the cell containing integer coordinate (x, z).
func (c *ColorField) At(x, z int) color.RGBA {
	return c.Colors[(z&c.mask)*c.Size+(x&c.mask)]
}

// Nearest returns the colour of the cell containing the world position.
func (c *ColorField) Nearest(x, z float32) color.RGBA {
	return c.At(int(math.Floor(x)), int(math.Floor(z)))
}

// Sample returns the bilinear height and nearest-cell colour at a world
// position. The renderer and the point queries both go through here, so
// they always agree.
func (m *Map) Sample(x, z float32) (float32, color.RGBA) {
	height, x0, z0 := m.Height.bilinear(x, z)
	return height, m.Color.Colors[z0*m.Color.Size+x0]
}

// HeightAt returns the sampled terrain height at a world position.
func (m *Map) HeightAt(x, z float32) float32 {
	return m.Height.Bilinear(x, z)
}

// ColorAt returns the sampled terrain colour at a world position.
func (m *Map) ColorAt(x, z float32) color.RGBA {
	return m.Color.Nearest(x, z)
}
