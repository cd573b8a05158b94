// Package game runs the interactive fly-over on top of the voxel renderer.
package game

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/assets"
	"github.com/Faultbox/voxel-space/internal/config"
	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/engine/debug"
	"github.com/Faultbox/voxel-space/internal/engine/fog"
	"github.com/Faultbox/voxel-space/internal/engine/present"
	"github.com/Faultbox/voxel-space/internal/engine/terrain"
	"github.com/Faultbox/voxel-space/internal/engine/voxel"
	"github.com/Faultbox/voxel-space/internal/logger"
	"github.com/Faultbox/voxel-space/internal/scenery"
	"github.com/Faultbox/voxel-space/pkg/math"
)

// MarkerColor is the colour of scattered scenery markers.
var MarkerColor = color.RGBA{R: 230, G: 40, B: 40, A: 255}

// Actions are the device-independent inputs for one frame.
type Actions struct {
	Controls camera.Controls

	Horizon    float32 // -1 lowers the horizon row, +1 raises it
	MapStep    int     // maps to advance, usually -1, 0 or +1
	ToggleFog  bool
	Reload     bool
	Screenshot bool
}

// Session drives a renderer from a fly camera. It holds no window state, so
// every frontend (SDL, terminal, ebiten) steps the same session.
type Session struct {
	cfg      *config.Config
	renderer *voxel.Renderer
	camera   *camera.FlyCamera
	shots    *debug.ScreenshotCapture
	log      *zap.Logger

	linear      fog.Params
	exponential fog.Params

	lastShot string
}

// NewSession creates a session whose camera starts at the configured pose.
func NewSession(cfg *config.Config, r *voxel.Renderer) *Session {
	cc := cfg.Camera
	cam := camera.NewFlyCamera(math.Vec3{X: cc.StartX, Y: cc.StartHeight, Z: cc.StartZ}, cc.StartYaw)
	cam.MoveSpeed = cc.MoveSpeed
	cam.TurnSpeed = cc.TurnSpeed
	cam.ClimbSpeed = cc.ClimbSpeed
	cam.TiltSpeed = cc.TiltSpeed

	s := &Session{
		cfg:      cfg,
		renderer: r,
		camera:   cam,
		shots:    debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "voxel"),
		log:      logger.Named("game"),
	}

	// Both fog modes share colour; the inactive one takes its config values.
	base := r.Fog()
	s.linear = base
	s.linear.Mode = fog.Linear
	s.exponential = base
	s.exponential.Mode = fog.Exponential
	if base.Mode == fog.Exponential {
		s.linear.Start, s.linear.End = cfg.Fog.Start, cfg.Fog.End
	} else {
		s.exponential.Density = cfg.Fog.Density
	}
	return s
}

// Camera returns the session camera.
func (s *Session) Camera() *camera.FlyCamera {
	return s.camera
}

// Renderer returns the session renderer.
func (s *Session) Renderer() *voxel.Renderer {
	return s.renderer
}

// Start loads the initial map. A map that fails to decode is logged and the
// session carries on with blank frames.
func (s *Session) Start() error {
	return s.afterMapChange(s.renderer.InitMap())
}

// Step applies one frame of actions and renders it.
func (s *Session) Step(a Actions, dt float32) error {
	if a.MapStep != 0 {
		if err := s.afterMapChange(s.renderer.SelectMap(s.renderer.CurrentMap() + a.MapStep)); err != nil {
			return err
		}
	}
	if a.Reload {
		if err := s.afterMapChange(s.renderer.ReloadMap()); err != nil {
			return err
		}
	}
	if a.ToggleFog {
		if err := s.toggleFog(); err != nil {
			return err
		}
	}
	if a.Horizon != 0 {
		st := s.renderer.Settings()
		s.renderer.SetHorizon(st.Horizon + a.Horizon*s.cfg.Camera.HorizonSpeed*dt)
	}

	s.camera.Update(a.Controls, dt)
	p := s.camera.Position
	s.camera.FollowGround(s.renderer.HeightAt(p.X, p.Z), s.cfg.Camera.Clearance)

	if err := s.renderer.RenderFrame(s.camera.Pose()); err != nil {
		return err
	}

	if a.Screenshot {
		if _, err := s.Screenshot(); err != nil {
			s.log.Warn("screenshot failed", zap.Error(err))
		}
	}
	return nil
}

// Screenshot writes the last rendered frame over the fog colour and returns
// the file path.
func (s *Session) Screenshot() (string, error) {
	img := debug.Flatten(s.renderer.Buffer().Image(), s.renderer.Fog().Color)
	path, err := s.shots.CaptureFrame(img)
	if err != nil {
		return "", err
	}
	s.lastShot = path
	s.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

// LastScreenshot returns the path of the most recent screenshot.
func (s *Session) LastScreenshot() string {
	return s.lastShot
}

func (s *Session) toggleFog() error {
	next := s.linear
	if s.renderer.Fog().Mode == fog.Linear {
		next = s.exponential
	}
	if err := s.renderer.SetFog(next); err != nil {
		return fmt.Errorf("toggle fog: %w", err)
	}
	s.log.Info("fog mode", zap.Stringer("mode", next.Mode))
	return nil
}

// afterMapChange tolerates decode failures, then rescatters scenery and
// lifts the camera clear of the new ground.
func (s *Session) afterMapChange(err error) error {
	if err != nil && !errors.Is(err, terrain.ErrAssetDecode) {
		return err
	}
	s.scatter()
	p := s.camera.Position
	s.camera.FollowGround(s.renderer.HeightAt(p.X, p.Z), s.cfg.Camera.Clearance)
	return nil
}

func (s *Session) scatter() {
	m := s.renderer.Map()
	if !s.cfg.Scenery.Enabled || m == nil {
		s.renderer.SetMarkers(nil, MarkerColor, 0)
		return
	}
	res, err := scenery.Scatter(s.renderer, s.cfg.SceneryParams(m.Size()))
	if err != nil {
		s.log.Warn("scenery scatter failed", zap.Error(err))
		s.renderer.SetMarkers(nil, MarkerColor, 0)
		return
	}
	s.log.Debug("scenery placed",
		zap.Int("count", len(res.Placements)),
		zap.Int("attempts", res.Attempts))
	s.renderer.SetMarkers(res.Positions(), MarkerColor, 2)
}

// OpenSource returns an asset manager rooted at the configured resource
// directory.
func OpenSource(cfg *config.Config) (*assets.Manager, error) {
	m := assets.NewManager()
	if err := m.AddDir(cfg.Terrain.ResourceDir); err != nil {
		return nil, err
	}
	return m, nil
}

// NewRenderer builds a renderer at the configured render resolution that
// reads maps from src and hands frames to p, which may be nil.
func NewRenderer(cfg *config.Config, src terrain.Source, p present.Presenter) (*voxel.Renderer, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	fogParams, err := cfg.FogParams()
	if err != nil {
		return nil, err
	}
	return voxel.New(voxel.Options{
		Width:      cfg.Graphics.RenderWidth,
		Height:     cfg.Graphics.RenderHeight,
		Catalog:    catalog,
		Source:     src,
		InitialMap: cfg.Terrain.InitialMap,
		Settings:   cfg.VoxelSettings(),
		Fog:        fogParams,
		Presenter:  p,
	})
}
