// Package main is the entry point for the Voxel Space fly-over.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/config"
	"github.com/Faultbox/voxel-space/internal/game/desktop"
	"github.com/Faultbox/voxel-space/internal/logger"
)

func main() {
	// Parse CLI flags first
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

	logger.Info("=== Voxel Space ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := desktop.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("main loop error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}
