// Package fog implements distance attenuation for the voxel terrain renderer.
package fog

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// TableSize is the number of integer depths with a precomputed exponential factor.
const TableSize = 1024

// ErrInvalidFog is returned for fog parameters that cannot be evaluated.
var ErrInvalidFog = errors.New("invalid fog parameters")

// Mode selects the attenuation function.
type Mode int

const (
	Exponential Mode = iota
	Linear
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case Exponential:
		return "exponential"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "exponential", "exp", "":
		return Exponential, nil
	case "linear":
		return Linear, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidFog, s)
	}
}

// Params describes the fog applied to every terrain sample.
type Params struct {
	Mode    Mode
	Density float32 // exponential
	Start   float32 // linear
	End     float32 // linear
	Color   color.RGBA
}

// DefaultParams returns light grey exponential fog.
func DefaultParams() Params {
	return Params{
		Mode:    Exponential,
		Density: 0.0025,
		Start:   300,
		End:     600,
		Color:   color.RGBA{R: 180, G: 180, B: 180, A: 255},
	}
}

// Validate rejects parameters that would divide by a non-positive value or
// produce factors outside [0,1].
func (p Params) Validate() error {
	switch p.Mode {
	case Exponential:
		if p.Density < 0 || math.IsNaN(float64(p.Density)) {
			return fmt.Errorf("%w: density %v must be >= 0", ErrInvalidFog, p.Density)
		}
	case Linear:
		if !(p.End > p.Start) {
			return fmt.Errorf("%w: end %v must be greater than start %v", ErrInvalidFog, p.End, p.Start)
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidFog, int(p.Mode))
	}
	return nil
}

// Model evaluates fog factors. The exponential table is built lazily and
// rebuilt only when the density changes.
type Model struct {
	params Params

	table        [TableSize]float32
	tableDensity float32
	tableValid   bool
	builds       int
}

// NewModel returns a model for validated parameters.
func NewModel(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: p}, nil
}

// Params returns the active parameters.
func (m *Model) Params() Params {
	return m.params
}

// SetParams replaces the parameters. Invalid parameters leave the model unchanged.
func (m *Model) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.params = p
	return nil
}

// Color returns the fog colour blended into distant samples.
func (m *Model) Color() color.RGBA {
	return m.params.Color
}

// Prepare makes sure the exponential table matches the current density.
// The renderer calls it once per frame, outside the column loop.
func (m *Model) Prepare() {
	if m.tableValid && m.tableDensity == m.params.Density {
		return
	}
	d := float64(m.params.Density)
	for z := range m.table {
		m.table[z] = clamp01(float32(math.Exp(-float64(z) * d)))
	}
	m.tableDensity = m.params.Density
	m.tableValid = true
	m.builds++
}

// Table returns the exponential table for the current density.
func (m *Model) Table() *[TableSize]float32 {
	m.Prepare()
	return &m.table
}

// Factor returns the attenuation at integer depth z: 1 means no fog, 0 means
// fully fogged.
func (m *Model) Factor(z int) float32 {
	switch m.params.Mode {
	case Linear:
		return LinearFactor(m.params.Start, m.params.End, z)
	default:
		if z >= 0 && z < TableSize {
			m.Prepare()
			return m.table[z]
		}
		return ExponentialFactor(m.params.Density, z)
	}
}

// ExponentialFactor computes exp(-z*density) clamped to [0,1].
func ExponentialFactor(density float32, z int) float32 {
	return clamp01(float32(math.Exp(-float64(z) * float64(density))))
}

// LinearFactor computes (end-z)/(end-start) clamped to [0,1]. A non-positive
// span yields 1; callers validate Params first so that never happens in a frame.
func LinearFactor(start, end float32, z int) float32 {
	span := end - start
	if span <= 0 {
		return 1
	}
	return clamp01((end - float32(z)) / span)
}

// Composite blends src towards fog: src*f + fog*(1-f) per channel, clamped.
func Composite(src, fog color.RGBA, f float32) color.RGBA {
	f = clamp01(f)
	g := 1 - f
	return color.RGBA{
		R: channel(float32(src.R)*f + float32(fog.R)*g),
		G: channel(float32(src.G)*f + float32(fog.G)*g),
		B: channel(float32(src.B)*f + float32(fog.B)*g),
		A: channel(float32(src.A)*f + float32(fog.A)*g),
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
