package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/voxel-space/internal/engine/fog"
	"github.com/Faultbox/voxel-space/internal/engine/voxel"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.RenderWidth != 320 || cfg.Graphics.RenderHeight != 200 {
		t.Errorf("expected render size 320x200, got %dx%d", cfg.Graphics.RenderWidth, cfg.Graphics.RenderHeight)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Terrain.MapCount != 29 {
		t.Errorf("expected 29 maps, got %d", cfg.Terrain.MapCount)
	}
	if cfg.Terrain.ColorPattern != "map%d.color.gif" {
		t.Errorf("unexpected color pattern %q", cfg.Terrain.ColorPattern)
	}

	if got := cfg.VoxelSettings(); got != voxel.DefaultSettings() {
		t.Errorf("voxel defaults %+v, want %+v", got, voxel.DefaultSettings())
	}

	p, err := cfg.FogParams()
	if err != nil {
		t.Fatalf("FogParams: %v", err)
	}
	if p != fog.DefaultParams() {
		t.Errorf("fog defaults %+v, want %+v", p, fog.DefaultParams())
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  render_width: 640
  render_height: 400
  fullscreen: true

terrain:
  resource_dir: "/opt/maps"
  map_count: 4
  color_pattern: "c%d.png"
  height_pattern: "h%d.png"
  initial_map: 3

voxel:
  horizon: 80
  zfar: 800

fog:
  mode: linear
  start: 100
  end: 400
  color: [10, 20, 30, 255]

scenery:
  enabled: true
  count: 12

logging:
  level: "debug"
  log_file: "voxel.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.RenderWidth != 640 {
		t.Errorf("graphics = %+v", cfg.Graphics)
	}
	if cfg.Terrain.ResourceDir != "/opt/maps" || cfg.Terrain.InitialMap != 3 {
		t.Errorf("terrain = %+v", cfg.Terrain)
	}

	s := cfg.VoxelSettings()
	if s.Horizon != 80 || s.ZFar != 800 || s.Scale != 100 {
		t.Errorf("voxel settings = %+v (unset fields should keep defaults)", s)
	}

	p, err := cfg.FogParams()
	if err != nil {
		t.Fatalf("FogParams: %v", err)
	}
	if p.Mode != fog.Linear || p.Start != 100 || p.End != 400 {
		t.Errorf("fog = %+v", p)
	}
	if p.Color != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("fog color = %v", p.Color)
	}

	c, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if d := c.Descriptor(5); d.Index != 1 || d.Height != "h1.png" {
		t.Errorf("Descriptor(5) = %+v", d)
	}

	if !cfg.Scenery.Enabled || cfg.SceneryParams(256).Count != 12 || cfg.SceneryParams(256).MapSize != 256 {
		t.Errorf("scenery = %+v", cfg.SceneryParams(256))
	}

	if cfg.Logging.LogFile != "voxel.log" {
		t.Errorf("expected log file 'voxel.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantFog bool
	}{
		{"zero render width", func(c *Config) { c.Graphics.RenderWidth = 0 }, false},
		{"huge render size", func(c *Config) { c.Graphics.RenderWidth, c.Graphics.RenderHeight = 100000, 100000 }, false},
		{"zero window", func(c *Config) { c.Graphics.Height = 0 }, false},
		{"no maps", func(c *Config) { c.Terrain.MapCount = 0 }, false},
		{"bad pattern", func(c *Config) { c.Terrain.HeightPattern = "height.gif" }, false},
		{"linear end before start", func(c *Config) { c.Fog.Mode, c.Fog.Start, c.Fog.End = "linear", 600, 300 }, true},
		{"negative density", func(c *Config) { c.Fog.Density = -0.1 }, true},
		{"unknown fog mode", func(c *Config) { c.Fog.Mode = "volumetric" }, true},
		{"zero zfar", func(c *Config) { c.Voxel.ZFar = 0 }, false},
		{"scenery band", func(c *Config) { c.Scenery.Enabled, c.Scenery.MinHeight, c.Scenery.MaxHeight = true, 5, 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.wantFog && !errors.Is(err, fog.ErrInvalidFog) {
				t.Errorf("error %v does not wrap ErrInvalidFog", err)
			}
		})
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets", "dusk.yaml")

	cfg := Default()
	cfg.Fog.Mode = "linear"
	cfg.Fog.Start = 50
	cfg.Fog.End = 250
	cfg.Terrain.InitialMap = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Fog != cfg.Fog || loaded.Terrain != cfg.Terrain {
		t.Errorf("round trip changed settings: %+v / %+v", loaded.Fog, loaded.Terrain)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "map flag",
			setup: func() { *flagMap = 12 },
			verify: func(cfg *Config) {
				if cfg.Terrain.InitialMap != 12 {
					t.Errorf("expected initial map 12, got %d", cfg.Terrain.InitialMap)
				}
			},
			teardown: func() { *flagMap = -1 },
		},
		{
			name:  "resources flag",
			setup: func() { *flagResources = "/tmp/maps" },
			verify: func(cfg *Config) {
				if cfg.Terrain.ResourceDir != "/tmp/maps" {
					t.Errorf("expected resource dir /tmp/maps, got %s", cfg.Terrain.ResourceDir)
				}
			},
			teardown: func() { *flagResources = "" },
		},
		{
			name:  "fog flag",
			setup: func() { *flagFog = "linear" },
			verify: func(cfg *Config) {
				if cfg.Fog.Mode != "linear" {
					t.Errorf("expected linear fog, got %s", cfg.Fog.Mode)
				}
			},
			teardown: func() { *flagFog = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}
