package voxel

import (
	"image/color"
	gomath "math"

	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/pkg/math"
)

// screenPoint is a projected world point. Row excludes the column lean.
type screenPoint struct {
	x     int
	row   float32
	lean  float32
	depth float32 // unclamped kernel depth of the point
}

func (r *Renderer) project(pose camera.Pose, p math.Vec3) (screenPoint, bool) {
	w, h := r.buf.Size()
	sin, cos := gomath.Sincos(float64(pose.Yaw()))
	s, c := float32(sin), float32(cos)

	vx := p.X - pose.Position.X
	vz := p.Z - pose.Position.Z
	if r.grid != nil {
		// The terrain repeats every map size; use the copy of p inside the
		// map-sized window centred half a map ahead of the eye.
		size := float32(r.grid.Size())
		half := size / 2
		vx = math.WrapCentered(vx-c*half, size) + c*half
		vz = math.WrapCentered(vz-s*half, size) + s*half
	}
	forward := vx*c + vz*s
	left := vx*s - vz*c
	if forward <= 0 || forward > r.settings.ZFar {
		return screenPoint{}, false
	}

	// Column rays are fwd + (1-2t)*left, so the lateral offset fixes t.
	t := (1 - left/forward) / 2
	if t < 0 || t >= 1 {
		return screenPoint{}, false
	}

	// The kernel numbers its first slice one unit past the ray start.
	raw := forward - 1
	depth := raw
	if depth < minDepth {
		depth = minDepth
	}

	tilt := r.settings.Tilt + pose.Tilt
	return screenPoint{
		x:     int(t * float32(w)),
		row:   (pose.Position.Y-p.Y)/depth*r.settings.Scale + r.settings.Horizon,
		lean:  (tilt*(t-0.5) + 0.5) * float32(h) / 6,
		depth: raw,
	}, true
}

// Project maps a world point to screen coordinates with the kernel's
// projection. On a loaded map the point repeats with the terrain and the
// copy ahead of the eye is used. ok is false when that copy is behind the
// eye, past zfar or off screen.
func (r *Renderer) Project(pose camera.Pose, p math.Vec3) (x, y int, ok bool) {
	if r.shutdown {
		return 0, 0, false
	}
	sp, ok := r.project(pose, p)
	if !ok {
		return 0, 0, false
	}
	_, h := r.buf.Size()
	y = int(sp.row + sp.lean)
	if y < 0 || y >= h {
		return 0, 0, false
	}
	return sp.x, y, true
}

// DrawMarkers paints a size×size square at every point that is not hidden
// by terrain in front of it. Each marker's column is marched again up to
// the marker's depth, so the result does not depend on earlier calls; draw
// after Render with the same pose to overlay the frame. It returns the
// number of markers drawn.
func (r *Renderer) DrawMarkers(pose camera.Pose, points []math.Vec3, c color.RGBA, size int) int {
	if r.shutdown || size < 1 {
		return 0
	}
	f := r.setup(pose)
	drawn := 0
	for _, p := range points {
		sp, ok := r.project(pose, p)
		if !ok {
			continue
		}
		y := int(sp.row + sp.lean)
		if y < 0 || y >= r.silhouette(&f, sp) {
			continue
		}

		x0 := sp.x - size/2
		for x := x0; x < x0+size; x++ {
			r.buf.FillSpan(x, y-size+1, y+1, c)
		}
		drawn++
	}
	return drawn
}

// silhouette returns the first row, lean included, covered by terrain
// closer to the eye than sp.
func (r *Renderer) silhouette(f *frame, sp screenPoint) int {
	front := f.height
	r.column(f, sp.x, &front, sp.depth, func(int, Span) {})
	return int(float32(front) + sp.lean)
}
