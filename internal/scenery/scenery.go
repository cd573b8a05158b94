// Package scenery scatters props such as trees over a voxel map.
package scenery

import (
	"errors"
	gomath "math"
	"math/rand"

	"github.com/Faultbox/voxel-space/pkg/math"
)

// HeightSampler returns the terrain height at a world position.
type HeightSampler interface {
	HeightAt(x, z float32) float32
}

// Params controls a scatter pass.
type Params struct {
	Count      int
	Seed       int64
	MapSize    float32 // positions are drawn from [0, MapSize)
	MinHeight  float32 // inclusive height band
	MaxHeight  float32
	MinSpacing float32
	MinScale   float32
	MaxScale   float32
}

// DefaultParams places trees on low ground, away from water and peaks.
func DefaultParams() Params {
	return Params{
		Count:      50,
		Seed:       42,
		MapSize:    1024,
		MinHeight:  1,
		MaxHeight:  10,
		MinSpacing: 30,
		MinScale:   0.8,
		MaxScale:   1.2,
	}
}

// Validate checks the parameters for a scatter pass.
func (p Params) Validate() error {
	switch {
	case p.Count < 0:
		return errors.New("scenery count must not be negative")
	case p.MapSize <= 0:
		return errors.New("scenery map size must be positive")
	case p.MaxHeight < p.MinHeight:
		return errors.New("scenery height band is empty")
	case p.MinSpacing < 0:
		return errors.New("scenery spacing must not be negative")
	case p.MaxScale < p.MinScale:
		return errors.New("scenery scale range is empty")
	}
	return nil
}

// Placement is one accepted prop.
type Placement struct {
	Position math.Vec3 // Y is the terrain height under the prop
	Rotation float32   // yaw in radians
	Scale    float32
}

// Result is the outcome of a scatter pass.
type Result struct {
	Placements []Placement
	Attempts   int
}

// Scatter draws random positions until Count props are placed or 10×Count
// attempts are spent. A candidate is accepted when its height lies in the
// band and it is at least MinSpacing from every earlier prop. The same seed
// and terrain always give the same result.
func Scatter(terrain HeightSampler, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewSource(p.Seed))
	maxAttempts := p.Count * 10
	minDistSq := p.MinSpacing * p.MinSpacing

	res := Result{Placements: make([]Placement, 0, p.Count)}
	for len(res.Placements) < p.Count && res.Attempts < maxAttempts {
		res.Attempts++

		x := rng.Float32() * p.MapSize
		z := rng.Float32() * p.MapSize
		h := terrain.HeightAt(x, z)
		if h < p.MinHeight || h > p.MaxHeight {
			continue
		}
		if tooClose(res.Placements, x, z, minDistSq) {
			continue
		}

		res.Placements = append(res.Placements, Placement{
			Position: math.Vec3{X: x, Y: h, Z: z},
			Rotation: rng.Float32() * 2 * gomath.Pi,
			Scale:    p.MinScale + rng.Float32()*(p.MaxScale-p.MinScale),
		})
	}
	return res, nil
}

func tooClose(placed []Placement, x, z, minDistSq float32) bool {
	for _, pl := range placed {
		dx := x - pl.Position.X
		dz := z - pl.Position.Z
		if dx*dx+dz*dz < minDistSq {
			return true
		}
	}
	return false
}

// Positions returns the placement positions.
func (r Result) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(r.Placements))
	for i, pl := range r.Placements {
		out[i] = pl.Position
	}
	return out
}
