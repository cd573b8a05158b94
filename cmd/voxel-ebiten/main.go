//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/config"
	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/engine/present/ebitenview"
	"github.com/Faultbox/voxel-space/internal/game"
	"github.com/Faultbox/voxel-space/internal/logger"
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
		logger.Error("ebiten preview failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	src, err := game.OpenSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	fogParams, err := cfg.FogParams()
	if err != nil {
		return err
	}
	view := ebitenview.New(fogParams.Color, true)

	r, err := game.NewRenderer(cfg, src, view)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	s := game.NewSession(cfg, r)
	if err := s.Start(); err != nil {
		return err
	}

	last := time.Now()
	g := &ebitenview.Game{
		Presenter: view,
		Width:     cfg.Graphics.Width,
		Height:    cfg.Graphics.Height,
		Step: func() error {
			if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
				return ebiten.Termination
			}
			if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
				ebiten.SetFullscreen(!ebiten.IsFullscreen())
			}
			now := time.Now()
			dt := float32(now.Sub(last).Seconds())
			last = now
			return s.Step(actions(), dt)
		},
	}

	ebiten.SetWindowTitle("Voxel Space")
	ebiten.SetWindowSize(cfg.Graphics.Width, cfg.Graphics.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Graphics.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.Graphics.VSync)
	if cfg.Graphics.FPSLimit > 0 {
		ebiten.SetTPS(cfg.Graphics.FPSLimit)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func axis(neg, pos ebiten.Key) float32 {
	var v float32
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	return v
}

// actions uses the same bindings as the SDL build.
func actions() game.Actions {
	a := game.Actions{
		Controls: camera.Controls{
			Forward: axis(ebiten.KeyS, ebiten.KeyW),
			Strafe:  axis(ebiten.KeyA, ebiten.KeyD),
			Turn:    axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
			Climb:   axis(ebiten.KeyE, ebiten.KeyQ),
			Tilt:    axis(ebiten.KeyZ, ebiten.KeyX),
		},
		Horizon:    axis(ebiten.KeyArrowDown, ebiten.KeyArrowUp),
		ToggleFog:  inpututil.IsKeyJustPressed(ebiten.KeyF1),
		Reload:     inpututil.IsKeyJustPressed(ebiten.KeyF5),
		Screenshot: inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		a.MapStep++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		a.MapStep--
	}
	return a
}
