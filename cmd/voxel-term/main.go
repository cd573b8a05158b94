// Voxel Term - flies over the terrain in a truecolor terminal.
//
// Controls: w/s a/d move, arrows turn and move the horizon, q/e climb,
// z/x tilt, PgUp/PgDn switch map, f fog mode, r reload, p screenshot,
// Esc quits.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/config"
	"github.com/Faultbox/voxel-space/internal/engine/present"
	"github.com/Faultbox/voxel-space/internal/game"
	"github.com/Faultbox/voxel-space/internal/logger"
)

const frameTime = 33 * time.Millisecond

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The screen owns stdout, so logs go to a file only.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = "voxel-term.log"
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("terminal preview failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	src, err := game.OpenSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	fogParams, err := cfg.FogParams()
	if err != nil {
		screen.Fini()
		return err
	}
	term := present.NewTerminal(screen, fogParams.Color)

	// The renderer closes the presenter, which finalizes the screen.
	r, err := game.NewRenderer(cfg, src, term)
	if err != nil {
		term.Close()
		return err
	}
	defer r.Shutdown()

	s := game.NewSession(cfg, r)
	if err := s.Start(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	var keys keyboard
	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys.handle(ev, time.Now())
				if keys.quit {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if err := s.Step(keys.actions(now), dt); err != nil {
				return err
			}
		}
	}
}
