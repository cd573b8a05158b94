package terrain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/voxel-space/pkg/math"
)

// Default catalog naming, matching the bundled resources directory.
const (
	DefaultMapCount      = 29
	DefaultColorPattern  = "map%d.color.gif"
	DefaultHeightPattern = "map%d.height.gif"
)

// Source provides raw asset bytes by name.
type Source interface {
	Load(name string) ([]byte, error)
}

// Descriptor names the assets of one catalog slot.
type Descriptor struct {
	Index  int
	Color  string
	Height string
}

// Catalog enumerates a fixed number of maps named by index.
type Catalog struct {
	count         int
	colorPattern  string
	heightPattern string
}

// NewCatalog creates a catalog of count maps. Each pattern must contain a
// single %d verb that receives the map index.
func NewCatalog(count int, colorPattern, heightPattern string) (*Catalog, error) {
	if count < 1 {
		return nil, fmt.Errorf("map count must be positive, got %d", count)
	}
	for _, p := range []string{colorPattern, heightPattern} {
		if strings.Count(p, "%d") != 1 || strings.Count(p, "%") != 1 {
			return nil, fmt.Errorf("map name pattern %q must contain exactly one %%d", p)
		}
	}
	return &Catalog{
		count:         count,
		colorPattern:  colorPattern,
		heightPattern: heightPattern,
	}, nil
}

// DefaultCatalog returns the catalog for the bundled map set.
func DefaultCatalog() *Catalog {
	return &Catalog{
		count:         DefaultMapCount,
		colorPattern:  DefaultColorPattern,
		heightPattern: DefaultHeightPattern,
	}
}

// Count returns the number of maps.
func (c *Catalog) Count() int {
	return c.count
}

// Normalize maps any index into [0, Count).
func (c *Catalog) Normalize(index int) int {
	return math.Wrap(index, c.count)
}

// Descriptor resolves an index, normalized first, to its asset names.
func (c *Catalog) Descriptor(index int) Descriptor {
	i := c.Normalize(index)
	return Descriptor{
		Index:  i,
		Color:  fmt.Sprintf(c.colorPattern, i),
		Height: fmt.Sprintf(c.heightPattern, i),
	}
}

// Options returns one display label per map, in index order, for map pickers.
func (c *Catalog) Options() []string {
	labels := make([]string, c.count)
	for i := range labels {
		labels[i] = fmt.Sprintf("Map %d", i)
	}
	return labels
}

// Load reads and decodes the height and colour assets of a slot.
func (c *Catalog) Load(src Source, index int) (*Map, error) {
	d := c.Descriptor(index)

	heightData, err := src.Load(d.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: map %d height: %w", ErrAssetDecode, d.Index, err)
	}
	colorData, err := src.Load(d.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: map %d color: %w", ErrAssetDecode, d.Index, err)
	}

	h, err := DecodeHeight(heightData)
	if err != nil {
		return nil, fmt.Errorf("map %d height %s: %w", d.Index, d.Height, err)
	}
	col, err := DecodeColor(colorData)
	if err != nil {
		return nil, fmt.Errorf("map %d color %s: %w", d.Index, d.Color, err)
	}

	m, err := NewMap(d.Index, h, col)
	if err != nil {
		return nil, fmt.Errorf("map %d: %w", d.Index, err)
	}
	return m, nil
}

// IsDecodeError reports whether err came from a missing or unusable asset.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrAssetDecode)
}
