// Package main is the entry point for the stencil mirror room demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/app"
	"github.com/Faultbox/mirror-room/internal/config"
	"github.com/Faultbox/mirror-room/internal/logger"
	"github.com/Faultbox/mirror-room/internal/notify"
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

	logger.Info("=== Stencil Mirrors ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("saving config failed", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	n := notify.NewDialog(false)

	a, err := app.New(cfg, n)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		n.Error("Initialization failed", "%v", err)
		logger.Sync()
		os.Exit(1)
	}

	if err := a.Run(); err != nil {
		logger.Error("frame loop failed", zap.Error(err))
		n.Error("Rendering failed", "%v", err)
		a.Close()
		logger.Sync()
		os.Exit(1)
	}

	if err := a.Close(); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
	logger.Info("closed normally")
}
