// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/Faultbox/voxel-space/internal/engine/fog"
	"github.com/Faultbox/voxel-space/internal/engine/framebuffer"
	"github.com/Faultbox/voxel-space/internal/engine/terrain"
	"github.com/Faultbox/voxel-space/internal/engine/voxel"
	"github.com/Faultbox/voxel-space/internal/scenery"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Voxel    VoxelConfig    `yaml:"voxel"`
	Fog      FogConfig      `yaml:"fog"`
	Camera   CameraConfig   `yaml:"camera"`
	Scenery  SceneryConfig  `yaml:"scenery"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings. The render resolution is the size
// of the frame buffer; the window scales it up.
type GraphicsConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	RenderWidth  int  `yaml:"render_width"`
	RenderHeight int  `yaml:"render_height"`
	Fullscreen   bool `yaml:"fullscreen"`
	VSync        bool `yaml:"vsync"`
	FPSLimit     int  `yaml:"fps_limit"`
	ShowFPS      bool `yaml:"show_fps"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// TerrainConfig locates the map catalog.
type TerrainConfig struct {
	ResourceDir   string `yaml:"resource_dir"`
	MapCount      int    `yaml:"map_count"`
	ColorPattern  string `yaml:"color_pattern"`
	HeightPattern string `yaml:"height_pattern"`
	InitialMap    int    `yaml:"initial_map"`
}

// VoxelConfig holds the projection settings.
type VoxelConfig struct {
	Horizon float32 `yaml:"horizon"`
	Tilt    float32 `yaml:"tilt"`
	ZFar    float32 `yaml:"zfar"`
	Scale   float32 `yaml:"scale"`
}

// FogConfig holds fog settings. Color is [r, g, b, a].
type FogConfig struct {
	Mode    string   `yaml:"mode"`
	Density float32  `yaml:"density"`
	Start   float32  `yaml:"start"`
	End     float32  `yaml:"end"`
	Color   [4]uint8 `yaml:"color"`
}

// CameraConfig holds the start pose and fly camera speeds.
type CameraConfig struct {
	StartX       float32 `yaml:"start_x"`
	StartZ       float32 `yaml:"start_z"`
	StartHeight  float32 `yaml:"start_height"`
	StartYaw     float32 `yaml:"start_yaw"`
	MoveSpeed    float32 `yaml:"move_speed"`
	TurnSpeed    float32 `yaml:"turn_speed"`
	ClimbSpeed   float32 `yaml:"climb_speed"`
	TiltSpeed    float32 `yaml:"tilt_speed"`
	HorizonSpeed float32 `yaml:"horizon_speed"`
	Clearance    float32 `yaml:"clearance"`
}

// SceneryConfig controls prop scattering.
type SceneryConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Count      int     `yaml:"count"`
	Seed       int64   `yaml:"seed"`
	MinHeight  float32 `yaml:"min_height"`
	MaxHeight  float32 `yaml:"max_height"`
	MinSpacing float32 `yaml:"min_spacing"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	sc := scenery.DefaultParams()
	return &Config{
		Graphics: GraphicsConfig{
			Width:        1280,
			Height:       720,
			RenderWidth:  320,
			RenderHeight: 200,
			Fullscreen:   false,
			VSync:        true,
			FPSLimit:     0,

			ScreenshotDir: "screenshots",
		},
		Terrain: TerrainConfig{
			ResourceDir:   "resources",
			MapCount:      terrain.DefaultMapCount,
			ColorPattern:  terrain.DefaultColorPattern,
			HeightPattern: terrain.DefaultHeightPattern,
			InitialMap:    0,
		},
		Voxel: VoxelConfig{
			Horizon: 100,
			Tilt:    0,
			ZFar:    600,
			Scale:   100,
		},
		Fog: FogConfig{
			Mode:    "exponential",
			Density: 0.0025,
			Start:   300,
			End:     600,
			Color:   [4]uint8{180, 180, 180, 255},
		},
		Camera: CameraConfig{
			StartX:       512,
			StartZ:       512,
			StartHeight:  150,
			StartYaw:     0,
			MoveSpeed:    30,
			TurnSpeed:    1.5,
			ClimbSpeed:   30,
			TiltSpeed:    1,
			HorizonSpeed: 60,
			Clearance:    10,
		},
		Scenery: SceneryConfig{
			Enabled:    false,
			Count:      sc.Count,
			Seed:       sc.Seed,
			MinHeight:  sc.MinHeight,
			MaxHeight:  sc.MaxHeight,
			MinSpacing: sc.MinSpacing,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings that would otherwise fail at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width < 1 || c.Graphics.Height < 1 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.RenderWidth < 1 || c.Graphics.RenderHeight < 1 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Graphics.RenderWidth, c.Graphics.RenderHeight))
	} else if c.Graphics.RenderWidth > framebuffer.MaxPixels/c.Graphics.RenderHeight {
		errs = append(errs, fmt.Errorf("render size %dx%d is too large", c.Graphics.RenderWidth, c.Graphics.RenderHeight))
	}
	if _, err := c.Catalog(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.FogParams(); err != nil {
		errs = append(errs, err)
	}
	if c.Voxel.ZFar < 1 {
		errs = append(errs, fmt.Errorf("zfar %v must be at least 1", c.Voxel.ZFar))
	}
	if c.Scenery.Enabled {
		if err := c.SceneryParams(0).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Catalog builds the map catalog described by the terrain section.
func (c *Config) Catalog() (*terrain.Catalog, error) {
	return terrain.NewCatalog(c.Terrain.MapCount, c.Terrain.ColorPattern, c.Terrain.HeightPattern)
}

// FogParams converts the fog section.
func (c *Config) FogParams() (fog.Params, error) {
	mode, err := fog.ParseMode(c.Fog.Mode)
	if err != nil {
		return fog.Params{}, err
	}
	p := fog.Params{
		Mode:    mode,
		Density: c.Fog.Density,
		Start:   c.Fog.Start,
		End:     c.Fog.End,
		Color:   color.RGBA{R: c.Fog.Color[0], G: c.Fog.Color[1], B: c.Fog.Color[2], A: c.Fog.Color[3]},
	}
	if err := p.Validate(); err != nil {
		return fog.Params{}, err
	}
	return p, nil
}

// VoxelSettings converts the voxel section.
func (c *Config) VoxelSettings() voxel.Settings {
	return voxel.Settings{
		Horizon: c.Voxel.Horizon,
		Tilt:    c.Voxel.Tilt,
		ZFar:    c.Voxel.ZFar,
		Scale:   c.Voxel.Scale,
	}
}

// SceneryParams converts the scenery section for a map of the given side.
func (c *Config) SceneryParams(mapSize int) scenery.Params {
	p := scenery.DefaultParams()
	p.Count = c.Scenery.Count
	p.Seed = c.Scenery.Seed
	p.MinHeight = c.Scenery.MinHeight
	p.MaxHeight = c.Scenery.MaxHeight
	p.MinSpacing = c.Scenery.MinSpacing
	if mapSize > 0 {
		p.MapSize = float32(mapSize)
	}
	return p
}
