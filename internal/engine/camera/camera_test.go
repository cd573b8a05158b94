package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/voxel-space/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestPoseYaw(t *testing.T) {
	tests := []struct {
		name   string
		target math.Vec3
		want   float32
	}{
		{"east", math.Vec3{X: 10}, 0},
		{"south", math.Vec3{Z: 10}, gomath.Pi / 2},
		{"west", math.Vec3{X: -10}, gomath.Pi},
		{"north", math.Vec3{Z: -10}, -gomath.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pose{Position: math.Vec3{Y: 50}, Target: tt.target}
			if got := p.Yaw(); !approx(got, tt.want) {
				t.Errorf("Yaw() = %v, want %v", got, tt.want)
			}
			if l := p.Forward().Length(); !approx(l, 1) {
				t.Errorf("Forward() length = %v", l)
			}
		})
	}
}

func TestPoseForwardDegenerate(t *testing.T) {
	p := Pose{Position: math.Vec3{X: 1, Y: 5, Z: 1}, Target: math.Vec3{X: 1, Y: 0, Z: 1}}
	if f := p.Forward(); f != (math.Vec2{}) {
		t.Errorf("Forward() = %v, want zero", f)
	}
}

func TestLookAtRoundTrip(t *testing.T) {
	for _, yaw := range []float32{-3, -1, 0, 0.5, 2.5} {
		p := LookAt(math.Vec3{X: 3, Y: 40, Z: -7}, yaw, 0.25)
		if !approx(p.Yaw(), yaw) {
			t.Errorf("LookAt(yaw=%v).Yaw() = %v", yaw, p.Yaw())
		}
		if p.Tilt != 0.25 {
			t.Errorf("Tilt = %v", p.Tilt)
		}
	}
}

func TestFlyCameraUpdate(t *testing.T) {
	c := NewFlyCamera(math.Vec3{Y: 50}, 0)

	c.Update(Controls{Forward: 1}, 1)
	if !approx(c.Position.X, c.MoveSpeed) || !approx(c.Position.Z, 0) {
		t.Errorf("forward moved to %+v", c.Position)
	}

	c.Update(Controls{Strafe: 1}, 1)
	if !approx(c.Position.Z, c.MoveSpeed) {
		t.Errorf("strafe right moved to %+v", c.Position)
	}

	c.Update(Controls{Climb: -1}, 100)
	if c.Position.Y != c.MinHeight {
		t.Errorf("climb clamp: Y = %v", c.Position.Y)
	}

	c.Update(Controls{Tilt: 1}, 100)
	if c.Tilt != c.MaxTilt {
		t.Errorf("tilt clamp: %v", c.Tilt)
	}

	c.Update(Controls{Turn: 1}, 1)
	if !approx(c.Yaw, c.TurnSpeed) {
		t.Errorf("turn: yaw = %v", c.Yaw)
	}
	if !approx(c.Pose().Yaw(), c.TurnSpeed) {
		t.Errorf("pose yaw = %v", c.Pose().Yaw())
	}
}

func TestFlyCameraFollowGround(t *testing.T) {
	c := NewFlyCamera(math.Vec3{Y: 5}, 0)
	c.FollowGround(100, 10)
	if c.Position.Y != 110 {
		t.Errorf("Y = %v, want 110", c.Position.Y)
	}
	c.FollowGround(20, 10)
	if c.Position.Y != 110 {
		t.Errorf("FollowGround lowered the eye to %v", c.Position.Y)
	}
}

func TestOrbitCameraPose(t *testing.T) {
	c := NewOrbitCamera()
	c.SetCenter(512, 0, 512)
	p := c.Pose()

	if !approx(p.Position.X, 512+c.Distance) || !approx(p.Position.Z, 512) {
		t.Errorf("position = %+v", p.Position)
	}
	// Looking back at the center from +X means yaw pi.
	if !approx(float32(gomath.Abs(float64(p.Yaw()))), gomath.Pi) {
		t.Errorf("yaw = %v", p.Yaw())
	}

	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("zoom clamp: %v", c.Distance)
	}
}

func TestOrbitCameraDrag(t *testing.T) {
	c := NewOrbitCamera()
	c.SetCenter(512, 40, 512)
	h := c.Height

	// Dragging left raises the yaw; the eye keeps its distance.
	c.HandleDrag(-100, 30)
	if !approx(c.RotationY, 100*c.DragSensitivity) {
		t.Errorf("RotationY = %v", c.RotationY)
	}
	if c.Height != h+30 {
		t.Errorf("Height = %v, want %v", c.Height, h+30)
	}
	p := c.Pose()
	d := p.Position.XZ().Distance(math.Vec2{X: 512, Y: 512})
	if gomath.Abs(float64(d-c.Distance)) > 0.01 {
		t.Errorf("distance from center = %v, want %v", d, c.Distance)
	}
	if p.Position.Y != 40+c.Height {
		t.Errorf("eye height = %v", p.Position.Y)
	}
}
