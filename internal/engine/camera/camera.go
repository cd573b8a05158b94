// Package camera provides the cameras that drive the voxel renderer. Every
// camera reduces to a Pose: an eye position, a look-at target and a tilt.
package camera

import (
	gomath "math"

	"github.com/Faultbox/voxel-space/pkg/math"
)

// Pose is the per-frame camera input of the renderer. Position.Y is the eye
// height above the terrain datum; only the XZ component of Target matters.
type Pose struct {
	Position math.Vec3
	Target   math.Vec3
	Tilt     float32
}

// Yaw returns the heading on the terrain plane, atan2(dz, dx).
func (p Pose) Yaw() float32 {
	return p.Target.XZ().Sub(p.Position.XZ()).Angle()
}

// Forward returns the unit heading on the terrain plane. A target directly
// above or below the eye yields the zero vector.
func (p Pose) Forward() math.Vec2 {
	return p.Target.XZ().Sub(p.Position.XZ()).Normalize()
}

// LookAt returns a pose at pos facing yaw, with the target one unit ahead.
func LookAt(pos math.Vec3, yaw, tilt float32) Pose {
	dir := math.FromAngle(yaw)
	return Pose{
		Position: pos,
		Target:   math.Vec3{X: pos.X + dir.X, Y: pos.Y, Z: pos.Z + dir.Y},
		Tilt:     tilt,
	}
}

// Controls is the held-key state for one update, each axis in [-1, 1].
type Controls struct {
	Forward float32 // +1 moves along the heading
	Strafe  float32 // +1 moves right
	Turn    float32 // +1 turns right (increasing yaw)
	Climb   float32 // +1 raises the eye
	Tilt    float32 // +1 leans right
}

// FlyCamera is a free-flying camera over the terrain plane.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32
	Tilt     float32

	MoveSpeed  float32 // world units per second
	TurnSpeed  float32 // radians per second
	ClimbSpeed float32 // height units per second
	TiltSpeed  float32 // tilt units per second
	MaxTilt    float32
	MinHeight  float32
	MaxHeight  float32
}

// NewFlyCamera creates a fly camera with default speeds.
func NewFlyCamera(pos math.Vec3, yaw float32) *FlyCamera {
	return &FlyCamera{
		Position:   pos,
		Yaw:        yaw,
		MoveSpeed:  30,
		TurnSpeed:  1.5,
		ClimbSpeed: 30,
		TiltSpeed:  1,
		MaxTilt:    1,
		MinHeight:  0,
		MaxHeight:  1000,
	}
}

// Update integrates one step of held controls over dt seconds.
func (c *FlyCamera) Update(ctl Controls, dt float32) {
	c.Yaw += ctl.Turn * c.TurnSpeed * dt

	fwd := math.FromAngle(c.Yaw)
	// Right of the heading in a Y-down screen convention.
	right := math.Vec2{X: -fwd.Y, Y: fwd.X}
	move := fwd.Scale(ctl.Forward).Add(right.Scale(ctl.Strafe)).Scale(c.MoveSpeed * dt)
	c.Position.X += move.X
	c.Position.Z += move.Y

	c.Position.Y = math.Clamp(c.Position.Y+ctl.Climb*c.ClimbSpeed*dt, c.MinHeight, c.MaxHeight)
	c.Tilt = math.Clamp(c.Tilt+ctl.Tilt*c.TiltSpeed*dt, -c.MaxTilt, c.MaxTilt)
}

// FollowGround keeps the eye at least clearance above ground height h.
func (c *FlyCamera) FollowGround(h, clearance float32) {
	if c.Position.Y < h+clearance {
		c.Position.Y = h + clearance
	}
}

// Pose returns the renderer input for the current state.
func (c *FlyCamera) Pose() Pose {
	return LookAt(c.Position, c.Yaw, c.Tilt)
}

// OrbitCamera orbits around a center point on the terrain.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	Distance  float32 // horizontal distance from center
	Height    float32 // eye height above CenterY
	RotationY float32 // yaw around the center, radians

	MinDistance float32
	MaxDistance float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		Height:          120.0,
		MinDistance:     20.0,
		MaxDistance:     1000.0,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	s, co := gomath.Sincos(float64(c.RotationY))
	return math.Vec3{
		X: c.CenterX + c.Distance*float32(co),
		Y: c.CenterY + c.Height,
		Z: c.CenterZ + c.Distance*float32(s),
	}
}

// Pose returns a pose at the orbit position looking at the center.
func (c *OrbitCamera) Pose() Pose {
	return Pose{
		Position: c.Position(),
		Target:   math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ},
	}
}

// HandleDrag rotates around the center based on a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.Height += deltaY
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}
