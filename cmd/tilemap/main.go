// Package main is the entry point for the tile map viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-tilemap/internal/config"
	"github.com/Faultbox/midgard-tilemap/internal/engine/camera"
	"github.com/Faultbox/midgard-tilemap/internal/game"
	"github.com/Faultbox/midgard-tilemap/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithOptions(logOptions(cfg.Logging)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Tile Map ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("path", path))
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}

	err = g.Run()
	g.Close()

	if errors.Is(err, camera.ErrUnsupportedScrollUnit) {
		logger.Fatal("unsupported scroll input; set input.pixel_scroll: line to accept it", zap.Error(err))
	}
	if err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func logOptions(cfg config.LoggingConfig) logger.Options {
	opts := logger.Options{Level: cfg.Level, Console: true}
	if cfg.LogFile != "" {
		opts.File = logger.FileConfig{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	}
	return opts
}
