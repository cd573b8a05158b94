package voxel

import (
	"image/color"
	gomath "math"

	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/engine/fog"
	"github.com/Faultbox/voxel-space/pkg/math"
)

// minDepth keeps the projection divisor away from zero on the first slice.
const minDepth = 0.1

// noLimit lets a column march the full zfar.
const noLimit = gomath.MaxFloat32

// Span is one vertical run of pixels the column kernel writes.
type Span struct {
	Z        int        // depth step that produced the span
	Top      int        // first row, inclusive
	Bottom   int        // last row, exclusive
	Color    color.RGBA // fogged terrain colour
	Frontier int        // occlusion frontier after the span
}

// frame is the per-frame ray setup shared by all columns.
type frame struct {
	width, height int

	posX, posZ float32
	camHeight  float32

	// Edge rays of the view frustum at zfar.
	plx, ply float32
	prx, pry float32

	zfar        float32
	steps       int
	depthOffset float32

	horizon float32
	scale   float32
	tilt    float32
}

func (r *Renderer) setup(pose camera.Pose) frame {
	w, h := r.buf.Size()

	sin, cos := gomath.Sincos(float64(pose.Yaw()))
	s, c := float32(sin), float32(cos)
	zfar := r.settings.ZFar

	dir := pose.Forward()
	depth := pose.Position.X*dir.X + pose.Position.Z*dir.Y

	steps := int(zfar)
	if steps > fog.TableSize {
		steps = fog.TableSize
	}

	r.fog.Prepare()

	return frame{
		width:       w,
		height:      h,
		posX:        pose.Position.X,
		posZ:        pose.Position.Z,
		camHeight:   pose.Position.Y,
		plx:         (c + s) * zfar,
		ply:         (s - c) * zfar,
		prx:         (c - s) * zfar,
		pry:         (s + c) * zfar,
		zfar:        zfar,
		steps:       steps,
		depthOffset: math.Fract(depth),
		horizon:     r.settings.Horizon,
		scale:       r.settings.Scale,
		tilt:        r.settings.Tilt + pose.Tilt,
	}
}

// column marches the ray of screen column i front to back and emits a span
// each time the projected terrain rises above *front, which the caller
// starts at the frame height. The march stops before the first slice whose
// depth reaches until. Nothing is emitted when no map is loaded.
func (r *Renderer) column(f *frame, i int, front *int, until float32, emit func(x int, s Span)) {
	m := r.grid
	if m == nil {
		return
	}

	t := float32(i) / float32(f.width)
	dx := (f.plx + (f.prx-f.plx)*t) / f.zfar
	dz := (f.ply + (f.pry-f.ply)*t) / f.zfar

	step := 1 - f.depthOffset
	rx := f.posX + dx*step
	rz := f.posZ + dz*step

	lean := (f.tilt*(t-0.5) + 0.5) * float32(f.height) / 6
	last := f.height - 1

	for z := 1; z < f.steps; z++ {
		rx += dx
		rz += dz

		depth := float32(z) - f.depthOffset
		if depth >= until {
			return
		}
		height, c := m.Sample(rx, rz)

		if depth < minDepth {
			depth = minDepth
		}

		projY := int((f.camHeight-height)/depth*f.scale + f.horizon)
		if projY < 0 {
			projY = 0
		} else if projY > last {
			projY = last
		}

		frontier := *front
		if projY < frontier {
			top := clampRow(int(float32(projY)+lean), f.height)
			bottom := clampRow(int(float32(frontier)+lean), f.height)
			if top > bottom {
				top = bottom
			}

			emit(i, Span{
				Z:        z,
				Top:      top,
				Bottom:   bottom,
				Color:    fog.Composite(c, r.fog.Color(), r.fog.Factor(z)),
				Frontier: projY,
			})
			*front = projY

			if projY <= 0 {
				return
			}
		}
	}
}

func clampRow(y, height int) int {
	if y < 0 {
		return 0
	}
	if y > height {
		return height
	}
	return y
}

func (r *Renderer) paint(x int, s Span) {
	r.buf.FillSpan(x, s.Top, s.Bottom, s.Color)
}

// TraceColumn runs the kernel for a single column and returns the spans it
// would paint, without touching the frame buffer or any other state.
// Columns outside the buffer and renderers without a map yield nil.
func (r *Renderer) TraceColumn(pose camera.Pose, i int) []Span {
	if r.shutdown {
		return nil
	}
	w, _ := r.buf.Size()
	if i < 0 || i >= w {
		return nil
	}

	var spans []Span
	f := r.setup(pose)
	front := f.height
	r.column(&f, i, &front, noLimit, func(_ int, s Span) {
		spans = append(spans, s)
	})
	return spans
}
