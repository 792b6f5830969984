// Package main is the entry point for the tinyrender command.
//
// Usage:
//
//	tinyrender [flags] model.obj [model.obj ...]
//	tinyrender -save-config [flags]
//
// Models may also be listed under model.paths in the config file.
// -save-config writes the merged defaults, file and flags to the user
// config file instead of rendering.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/tinyrender/internal/config"
	"github.com/Faultbox/tinyrender/internal/engine/model"
	"github.com/Faultbox/tinyrender/internal/engine/scene"
	"github.com/Faultbox/tinyrender/internal/engine/shader"
	"github.com/Faultbox/tinyrender/internal/logger"
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

	if config.SaveConfigRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("saving config failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
		logger.Sync()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, config.Args())
	stop()

	if err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = cfg.Model.Paths
	}
	if len(paths) == 0 {
		return errors.New("no models given: pass .obj paths or set model.paths")
	}

	logger.Info("=== tinyrender ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	meshes := make([]shader.Mesh, 0, len(paths))
	for _, path := range paths {
		m, err := model.Load(path)
		if err != nil {
			return err
		}
		if cfg.Model.Normalize {
			m.Normalize()
		}
		meshes = append(meshes, m)
	}

	res, err := scene.New(cfg).Render(ctx, meshes)
	if err != nil {
		return err
	}
	return res.Save(cfg.Output)
}
