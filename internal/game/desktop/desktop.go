// Package desktop runs the fly-over in an SDL2 window, presenting frames
// through OpenGL.
package desktop

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/assets"
	"github.com/Faultbox/voxel-space/internal/config"
	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/engine/input"
	"github.com/Faultbox/voxel-space/internal/engine/present/opengl"
	"github.com/Faultbox/voxel-space/internal/engine/window"
	"github.com/Faultbox/voxel-space/internal/game"
	"github.com/Faultbox/voxel-space/internal/logger"
)

// Title is the window title.
const Title = "Voxel Space"

// Game is the desktop application.
type Game struct {
	config  *config.Config
	running bool
	window  *window.Window
	input   *input.Input
	assets  *assets.Manager
	session *game.Session
	log     *zap.Logger
}

// New opens the window and loads the initial map.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}
	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("render_width", cfg.Graphics.RenderWidth),
		zap.Int("render_height", cfg.Graphics.RenderHeight))

	var err error
	g.assets, err = game.OpenSource(cfg)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Presenter AFTER window, since OpenGL context must exist
	sky := cfg.Fog.Color
	presenter, err := opengl.New(opengl.Config{
		Viewport:   g.window.DrawableSize,
		KeepAspect: true,
		Sky:        [3]float32{float32(sky[0]) / 255, float32(sky[1]) / 255, float32(sky[2]) / 255},
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	renderer, err := game.NewRenderer(cfg, g.assets, presenter)
	if err != nil {
		presenter.Close()
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.session = game.NewSession(cfg, renderer)
	if err := g.session.Start(); err != nil {
		renderer.Shutdown()
		g.window.Close()
		return nil, err
	}

	g.input = input.New()
	g.log.Info("initialized successfully")
	return g, nil
}

// Run starts the main loop and returns when the window closes or Escape is
// pressed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	g.log.Info("starting main loop")

	for g.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			if event.Type != input.EventKeyDown || event.Repeat {
				continue
			}
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_F11:
				if err := g.window.ToggleFullscreen(); err != nil {
					g.log.Warn("fullscreen toggle failed", zap.Error(err))
				}
			}
		}
		if !g.running {
			break
		}

		if err := g.session.Step(Actions(g.input), dt); err != nil {
			return fmt.Errorf("frame error: %w", err)
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Graphics.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s - map %d - %d fps", Title, g.session.Renderer().CurrentMap(), frameCount))
			}
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// Close releases the renderer, the assets and the window.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.session != nil {
		g.session.Renderer().Shutdown()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// KeyState is the keyboard view Actions reads.
type KeyState interface {
	IsKeyPressed(sdl.Scancode) bool
	Axis(neg, pos sdl.Scancode) float32
}

// Actions maps the keyboard to session actions.
//
//	W/S        forward/back      A/D      strafe
//	Left/Right turn              Q/E      climb/descend
//	Z/X        tilt              Up/Down  horizon row
//	PgUp/PgDn  next/prev map     F1       fog mode
//	F5         reload map        F12      screenshot
func Actions(k KeyState) game.Actions {
	a := game.Actions{
		Controls: camera.Controls{
			Forward: k.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
			Strafe:  k.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
			Turn:    k.Axis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT),
			Climb:   k.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q),
			Tilt:    k.Axis(sdl.SCANCODE_Z, sdl.SCANCODE_X),
		},
		Horizon:    k.Axis(sdl.SCANCODE_DOWN, sdl.SCANCODE_UP),
		ToggleFog:  k.IsKeyPressed(sdl.SCANCODE_F1),
		Reload:     k.IsKeyPressed(sdl.SCANCODE_F5),
		Screenshot: k.IsKeyPressed(sdl.SCANCODE_F12),
	}
	if k.IsKeyPressed(sdl.SCANCODE_PAGEUP) {
		a.MapStep++
	}
	if k.IsKeyPressed(sdl.SCANCODE_PAGEDOWN) {
		a.MapStep--
	}
	return a
}
