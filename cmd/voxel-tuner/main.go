// Voxel Tuner - an ImGui tool for adjusting projection and fog settings
// against a live render.
package main

import (
	"fmt"
	gomath "math"
	"os"
	"runtime"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/assets"
	"github.com/Faultbox/voxel-space/internal/config"
	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/engine/debug"
	"github.com/Faultbox/voxel-space/internal/engine/fog"
	"github.com/Faultbox/voxel-space/internal/engine/voxel"
	"github.com/Faultbox/voxel-space/internal/game"
	"github.com/Faultbox/voxel-space/internal/logger"
	"github.com/Faultbox/voxel-space/pkg/math"
)

const panelWidth = 320

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app := NewApp(cfg)
	defer app.Close()

	if err := app.OpenResources(cfg.Terrain.ResourceDir); err != nil {
		logger.Warn("no maps loaded", zap.Error(err))
	}

	app.Run()
}

// App is the tuner state. All fields are touched only from the render
// callback except pendingDir, which the directory dialog sets.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config
	log     *zap.Logger

	assets   *assets.Manager
	renderer *voxel.Renderer
	frame    *backend.Texture
	dirty    bool

	// Slider state
	mapIndex  int32
	horizon   float32
	tilt      float32
	zfar      float32
	scale     float32
	linearFog bool
	density   float32
	fogStart  float32
	fogEnd    float32
	camX      float32
	camZ      float32
	camHeight float32
	camYaw    float32
	zoom      float32

	// Orbit preview around the map centre, driven by the mouse
	orbitView bool
	orbit     *camera.OrbitCamera
	lastMouse imgui.Vec2

	// Directory chosen in the dialog, opened on the main thread
	pendingDir string
	status     string
}

// NewApp creates the window and copies the config into slider state.
func NewApp(cfg *config.Config) *App {
	app := &App{
		cfg:       cfg,
		log:       logger.Named("tuner"),
		mapIndex:  int32(cfg.Terrain.InitialMap),
		horizon:   cfg.Voxel.Horizon,
		tilt:      cfg.Voxel.Tilt,
		zfar:      cfg.Voxel.ZFar,
		scale:     cfg.Voxel.Scale,
		linearFog: cfg.Fog.Mode == fog.Linear.String(),
		density:   cfg.Fog.Density,
		fogStart:  cfg.Fog.Start,
		fogEnd:    cfg.Fog.End,
		camX:      cfg.Camera.StartX,
		camZ:      cfg.Camera.StartZ,
		camHeight: cfg.Camera.StartHeight,
		camYaw:    cfg.Camera.StartYaw,
		zoom:      2,
		orbit:     camera.NewOrbitCamera(),
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}
	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Voxel Tuner", cfg.Graphics.Width, cfg.Graphics.Height)
	return app
}

// OpenResources replaces the asset source and renderer with ones reading dir.
func (app *App) OpenResources(dir string) error {
	cfg := *app.cfg
	cfg.Terrain.ResourceDir = dir
	cfg.Terrain.InitialMap = int(app.mapIndex)

	src, err := game.OpenSource(&cfg)
	if err != nil {
		return err
	}
	r, err := game.NewRenderer(&cfg, src, nil)
	if err != nil {
		src.Close()
		return err
	}
	if err := r.InitMap(); err != nil {
		app.status = err.Error()
	} else {
		app.status = fmt.Sprintf("Loaded map %d from %s", r.CurrentMap(), dir)
	}

	app.closeRenderer()
	app.assets = src
	app.renderer = r
	app.centerOrbit()
	app.cfg.Terrain.ResourceDir = dir
	app.dirty = true
	app.log.Info("resources opened", zap.String("dir", dir))
	return nil
}

// Close releases the renderer and the frame texture.
func (app *App) Close() {
	app.closeRenderer()
	if app.frame != nil {
		app.frame.Release()
		app.frame = nil
	}
}

// centerOrbit points the orbit camera at the middle of the current map.
func (app *App) centerOrbit() {
	m := app.renderer.Map()
	if m == nil {
		return
	}
	mid := float32(m.Size()) / 2
	app.orbit.SetCenter(mid, app.renderer.HeightAt(mid, mid), mid)
}

func (app *App) closeRenderer() {
	if app.renderer != nil {
		app.renderer.Shutdown()
		app.renderer = nil
	}
	if app.assets != nil {
		app.assets.Close()
		app.assets = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// openDirDialog shows a native directory picker. SDL window operations must
// happen on the main thread, so the result is queued for render.
func (app *App) openDirDialog() {
	go func() {
		dir, err := dialog.Directory().Title("Select map directory").Browse()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "Directory dialog error: %v\n", err)
			}
			return
		}
		app.pendingDir = dir
	}()
}

func (app *App) render() {
	if app.pendingDir != "" {
		dir := app.pendingDir
		app.pendingDir = ""
		if err := app.OpenResources(dir); err != nil {
			app.status = err.Error()
		}
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, workSize.Y))
	if imgui.BeginV("Settings", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+panelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-panelWidth, workSize.Y))
	if imgui.BeginV("View", nil, flags) {
		app.renderView()
	}
	imgui.End()
}

func (app *App) renderControls() {
	if imgui.Button("Open maps...") {
		app.openDirDialog()
	}
	imgui.SameLine()
	if imgui.Button("Save config") {
		app.saveConfig()
	}
	imgui.TextWrapped(app.status)
	imgui.Separator()

	if app.renderer == nil {
		imgui.TextDisabled("No map directory loaded")
		return
	}

	imgui.Text("Map")
	maxMap := int32(app.renderer.Catalog().Count() - 1)
	if imgui.SliderIntV("##Map", &app.mapIndex, 0, maxMap, "%d", imgui.SliderFlagsNone) {
		if err := app.renderer.SelectMap(int(app.mapIndex)); err != nil {
			app.status = err.Error()
		} else {
			app.status = fmt.Sprintf("Map %d", app.renderer.CurrentMap())
		}
		app.centerOrbit()
		app.dirty = true
	}
	if imgui.Button("Reload") {
		if err := app.renderer.ReloadMap(); err != nil {
			app.status = err.Error()
		}
		app.dirty = true
	}

	imgui.Spacing()
	imgui.Text("Projection")
	app.slider("Horizon", &app.horizon, -200, 400, "%.0f")
	app.slider("Tilt", &app.tilt, -1, 1, "%.2f")
	app.slider("Distance", &app.zfar, 1, fog.TableSize, "%.0f")
	app.slider("Scale", &app.scale, 10, 400, "%.0f")

	imgui.Spacing()
	imgui.Text("Fog")
	if imgui.Checkbox("Linear", &app.linearFog) {
		app.dirty = true
	}
	if app.linearFog {
		app.slider("Start", &app.fogStart, 0, fog.TableSize, "%.0f")
		app.slider("End", &app.fogEnd, 1, fog.TableSize, "%.0f")
	} else {
		app.slider("Density", &app.density, 0, 0.02, "%.4f")
	}

	imgui.Spacing()
	imgui.SliderFloatV("Zoom", &app.zoom, 1, 6, "%.1fx", imgui.SliderFlagsNone)

	imgui.Spacing()
	imgui.Text("Camera")
	if imgui.Checkbox("Orbit view", &app.orbitView) {
		app.dirty = true
	}
	if app.orbitView {
		imgui.TextDisabled("Drag the view to orbit, scroll to zoom")
		return
	}
	size := float32(1024)
	if m := app.renderer.Map(); m != nil {
		size = float32(m.Size())
	}
	app.slider("X", &app.camX, 0, size, "%.0f")
	app.slider("Z", &app.camZ, 0, size, "%.0f")
	app.slider("Height", &app.camHeight, 0, 500, "%.0f")
	app.slider("Yaw", &app.camYaw, -gomath.Pi, gomath.Pi, "%.2f")
}

func (app *App) slider(label string, v *float32, lo, hi float32, format string) {
	if imgui.SliderFloatV(label, v, lo, hi, format, imgui.SliderFlagsNone) {
		app.dirty = true
	}
}

func (app *App) renderView() {
	if app.renderer == nil {
		return
	}
	if app.dirty {
		app.dirty = false
		app.redraw()
	}
	if app.frame == nil {
		return
	}

	w, h := app.renderer.Buffer().Size()
	imgui.ImageWithBgV(
		app.frame.ID,
		imgui.NewVec2(float32(w)*app.zoom, float32(h)*app.zoom),
		imgui.NewVec2(0, 0),
		imgui.NewVec2(1, 1),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)
	if app.orbitView && imgui.IsItemHovered() {
		app.handleOrbitInput()
	}

	eye := app.pose().Position
	imgui.Text(fmt.Sprintf("Ground height under camera: %.1f", app.renderer.HeightAt(eye.X, eye.Z)))
}

// handleOrbitInput turns drags over the frame into orbit rotation and the
// wheel into distance.
func (app *App) handleOrbitInput() {
	mousePos := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		app.orbit.HandleDrag(mousePos.X-app.lastMouse.X, mousePos.Y-app.lastMouse.Y)
		app.dirty = true
	}
	app.lastMouse = mousePos

	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		app.orbit.HandleZoom(wheel)
		app.dirty = true
	}
}

// pose returns the preview pose from the orbit camera or the sliders.
func (app *App) pose() camera.Pose {
	if app.orbitView {
		return app.orbit.Pose()
	}
	return camera.LookAt(math.Vec3{X: app.camX, Y: app.camHeight, Z: app.camZ}, app.camYaw, 0)
}

// redraw applies the sliders and uploads a fresh frame texture.
func (app *App) redraw() {
	r := app.renderer
	r.SetHorizon(app.horizon)
	r.SetTilt(app.tilt)
	r.SetZFar(app.zfar)
	r.SetScale(app.scale)

	p := r.Fog()
	p.Mode = fog.Exponential
	if app.linearFog {
		p.Mode = fog.Linear
	}
	p.Density, p.Start, p.End = app.density, app.fogStart, app.fogEnd
	if err := r.SetFog(p); err != nil {
		app.status = err.Error()
	}

	if err := r.Render(app.pose()); err != nil {
		app.status = err.Error()
		return
	}

	if app.frame != nil {
		app.frame.Release()
	}
	app.frame = backend.NewTextureFromRgba(debug.Flatten(r.Buffer().Image(), r.Fog().Color))
}

// saveConfig writes the tuned values back to the user config.
func (app *App) saveConfig() {
	c := app.cfg
	c.Terrain.InitialMap = int(app.mapIndex)
	c.Voxel.Horizon = app.horizon
	c.Voxel.Tilt = app.tilt
	c.Voxel.ZFar = app.zfar
	c.Voxel.Scale = app.scale
	c.Fog.Mode = fog.Exponential.String()
	if app.linearFog {
		c.Fog.Mode = fog.Linear.String()
	}
	c.Fog.Density = app.density
	c.Fog.Start = app.fogStart
	c.Fog.End = app.fogEnd
	c.Camera.StartX = app.camX
	c.Camera.StartZ = app.camZ
	c.Camera.StartHeight = app.camHeight
	c.Camera.StartYaw = app.camYaw

	path, err := c.Save()
	if err != nil {
		app.status = fmt.Sprintf("Save failed: %v", err)
		return
	}
	app.status = "Saved " + path
}
