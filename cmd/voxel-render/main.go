// Voxel Render - renders frames without a window and writes them as PNG.
//
// A single frame is flattened over the fog colour. With -frames N the camera
// flies forward and every raw frame is written in sequence.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/config"
	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/engine/present"
	"github.com/Faultbox/voxel-space/internal/game"
	"github.com/Faultbox/voxel-space/internal/logger"
)

var (
	flagOut    = flag.String("out", "renders", "Output directory")
	flagFrames = flag.Int("frames", 1, "Number of frames to render")
	flagFPS    = flag.Float64("fps", 30, "Simulated frame rate of a sequence")
	flagX      = flag.Float64("x", -1, "Camera X (negative keeps config)")
	flagZ      = flag.Float64("z", -1, "Camera Z (negative keeps config)")
	flagH      = flag.Float64("h", -1, "Camera height (negative keeps config)")
	flagYaw    = flag.Float64("yaw", 0, "Camera yaw in radians")
	flagTurn   = flag.Float64("turn", 0, "Turn rate of a sequence, -1 to 1")
)

func main() {
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

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if *flagFrames < 1 {
		return fmt.Errorf("frames must be positive, got %d", *flagFrames)
	}
	if *flagFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", *flagFPS)
	}
	if *flagX >= 0 {
		cfg.Camera.StartX = float32(*flagX)
	}
	if *flagZ >= 0 {
		cfg.Camera.StartZ = float32(*flagZ)
	}
	if *flagH >= 0 {
		cfg.Camera.StartHeight = float32(*flagH)
	}
	cfg.Camera.StartYaw = float32(*flagYaw)
	cfg.Graphics.ScreenshotDir = *flagOut

	src, err := game.OpenSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	var seq *present.PNG
	var p present.Presenter
	if *flagFrames > 1 {
		if err := os.MkdirAll(*flagOut, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
		seq = present.NewPNG(*flagOut, "frame")
		p = seq
	}

	r, err := game.NewRenderer(cfg, src, p)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	s := game.NewSession(cfg, r)
	if err := s.Start(); err != nil {
		return err
	}
	if r.Map() == nil {
		logger.Warn("map did not load, output will be blank", zap.Int("map", r.CurrentMap()))
	}

	if seq == nil {
		if err := s.Step(game.Actions{}, 0); err != nil {
			return err
		}
		path, err := s.Screenshot()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	dt := float32(1 / *flagFPS)
	fly := game.Actions{Controls: camera.Controls{Forward: 1, Turn: float32(*flagTurn)}}
	for i := 0; i < *flagFrames; i++ {
		if err := s.Step(fly, dt); err != nil {
			return err
		}
	}
	for _, path := range seq.Written() {
		fmt.Println(path)
	}
	return nil
}
