// Package voxel implements the column raycasting terrain renderer.
package voxel

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/engine/fog"
	"github.com/Faultbox/voxel-space/internal/engine/framebuffer"
	"github.com/Faultbox/voxel-space/internal/engine/present"
	"github.com/Faultbox/voxel-space/internal/engine/terrain"
	"github.com/Faultbox/voxel-space/internal/logger"
	"github.com/Faultbox/voxel-space/pkg/math"
)

// ErrShutdown is returned by operations on a renderer after Shutdown.
var ErrShutdown = errors.New("renderer is shut down")

// Settings are the projection parameters, adjustable between frames.
type Settings struct {
	Horizon float32 // screen row of the horizon line
	Tilt    float32 // lean added to every pose
	ZFar    float32 // march distance, capped at fog.TableSize
	Scale   float32 // vertical projection scale
}

// DefaultSettings returns the stock projection.
func DefaultSettings() Settings {
	return Settings{
		Horizon: 100,
		Tilt:    0,
		ZFar:    600,
		Scale:   100,
	}
}

// Options configures a new Renderer.
type Options struct {
	Width  int
	Height int

	Catalog    *terrain.Catalog // nil means terrain.DefaultCatalog()
	Source     terrain.Source
	InitialMap int

	Settings Settings
	Fog      fog.Params

	// Presenter receives every frame from RenderFrame. Nil renders only.
	Presenter present.Presenter
}

// Evicter is implemented by sources that cache asset bytes.
type Evicter interface {
	Evict(names ...string)
}

// Renderer owns the selected map, the fog model and the frame buffer.
// It is not safe for concurrent use; all calls come from the frame loop.
type Renderer struct {
	catalog   *terrain.Catalog
	source    terrain.Source
	presenter present.Presenter
	log       *zap.Logger

	initialMap int
	current    int
	grid       *terrain.Map

	settings Settings
	fog      *fog.Model
	buf      *framebuffer.Buffer

	markers     []math.Vec3
	markerColor color.RGBA
	markerSize  int

	shutdown bool
}

// New allocates the frame buffer and validates the fog parameters. No map
// is loaded until InitMap or SelectMap.
func New(opts Options) (*Renderer, error) {
	buf, err := framebuffer.New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	model, err := fog.NewModel(opts.Fog)
	if err != nil {
		return nil, err
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = terrain.DefaultCatalog()
	}
	settings := opts.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}

	r := &Renderer{
		catalog:    catalog,
		source:     opts.Source,
		presenter:  opts.Presenter,
		log:        logger.Named("voxel"),
		initialMap: opts.InitialMap,
		settings:   settings,
		fog:        model,
		buf:        buf,
	}
	r.log.Debug("renderer created",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("maps", catalog.Count()))
	return r, nil
}

// InitMap loads the configured initial map.
func (r *Renderer) InitMap() error {
	return r.SelectMap(r.initialMap)
}

// SelectMap switches to the map at index modulo the catalog size. On a
// decode failure the index is kept, the grids are dropped so frames render
// blank, and the error wraps terrain.ErrAssetDecode.
func (r *Renderer) SelectMap(index int) error {
	if r.shutdown {
		return ErrShutdown
	}
	if r.source == nil {
		return fmt.Errorf("%w: no asset source", terrain.ErrAssetDecode)
	}

	r.current = r.catalog.Normalize(index)
	m, err := r.catalog.Load(r.source, r.current)
	if err != nil {
		r.grid = nil
		r.log.Warn("map load failed, rendering blank",
			zap.Int("map", r.current),
			zap.Error(err))
		return err
	}

	r.grid = m
	r.log.Info("map selected",
		zap.Int("map", r.current),
		zap.Int("size", m.Size()))
	return nil
}

// ReloadMap drops any cached bytes of the current map and decodes it again.
func (r *Renderer) ReloadMap() error {
	if r.shutdown {
		return ErrShutdown
	}
	if ev, ok := r.source.(Evicter); ok {
		d := r.catalog.Descriptor(r.current)
		ev.Evict(d.Color, d.Height)
	}
	return r.SelectMap(r.current)
}

// CurrentMap returns the normalized index of the selected map.
func (r *Renderer) CurrentMap() int {
	return r.current
}

// Catalog returns the map catalog.
func (r *Renderer) Catalog() *terrain.Catalog {
	return r.catalog
}

// Map returns the decoded grids, or nil when none are loaded.
func (r *Renderer) Map() *terrain.Map {
	return r.grid
}

// HeightAt samples the terrain height exactly as the renderer does. It
// returns 0 when no map is loaded.
func (r *Renderer) HeightAt(x, z float32) float32 {
	if r.grid == nil {
		return 0
	}
	return r.grid.HeightAt(x, z)
}

// ColorAt samples the terrain colour exactly as the renderer does. It
// returns transparent when no map is loaded.
func (r *Renderer) ColorAt(x, z float32) color.RGBA {
	if r.grid == nil {
		return framebuffer.Transparent
	}
	return r.grid.ColorAt(x, z)
}

// Settings returns the projection settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// SetHorizon sets the horizon row.
func (r *Renderer) SetHorizon(h float32) {
	r.settings.Horizon = h
}

// SetTilt sets the base lean.
func (r *Renderer) SetTilt(t float32) {
	r.settings.Tilt = t
}

// SetZFar sets the march distance. Values below 1 are raised to 1.
func (r *Renderer) SetZFar(z float32) {
	if z < 1 {
		z = 1
	}
	r.settings.ZFar = z
}

// SetScale sets the vertical projection scale.
func (r *Renderer) SetScale(s float32) {
	r.settings.Scale = s
}

// Fog returns the active fog parameters.
func (r *Renderer) Fog() fog.Params {
	return r.fog.Params()
}

// SetFog replaces the fog parameters. Invalid parameters are rejected with
// fog.ErrInvalidFog and the previous ones stay active.
func (r *Renderer) SetFog(p fog.Params) error {
	if err := r.fog.SetParams(p); err != nil {
		return err
	}
	r.log.Debug("fog updated",
		zap.Stringer("mode", p.Mode),
		zap.Float32("density", p.Density),
		zap.Float32("start", p.Start),
		zap.Float32("end", p.End))
	return nil
}

// Buffer returns the frame buffer holding the last rendered frame.
func (r *Renderer) Buffer() *framebuffer.Buffer {
	return r.buf
}

// Render draws one frame for pose into the buffer without presenting it.
func (r *Renderer) Render(pose camera.Pose) error {
	if r.shutdown {
		return ErrShutdown
	}
	r.buf.Clear()
	f := r.setup(pose)
	for i := 0; i < f.width; i++ {
		front := f.height
		r.column(&f, i, &front, noLimit, r.paint)
	}
	if len(r.markers) > 0 {
		r.DrawMarkers(pose, r.markers, r.markerColor, r.markerSize)
	}
	return nil
}

// SetMarkers sets world points drawn as size×size squares over every
// rendered frame. A nil slice clears them.
func (r *Renderer) SetMarkers(points []math.Vec3, c color.RGBA, size int) {
	r.markers = points
	r.markerColor = c
	r.markerSize = size
}

// RenderFrame renders a frame for pose and hands it to the presenter.
func (r *Renderer) RenderFrame(pose camera.Pose) error {
	if err := r.Render(pose); err != nil {
		return err
	}
	if r.presenter == nil {
		return nil
	}
	if err := r.presenter.Present(r.buf); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// Shutdown releases the grids, the buffer and the presenter. Later calls
// return ErrShutdown.
func (r *Renderer) Shutdown() {
	if r.shutdown {
		return
	}
	r.shutdown = true
	r.grid = nil
	r.buf.Release()
	if r.presenter != nil {
		r.presenter.Close()
	}
	r.log.Debug("renderer shut down")
}
