package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/anewworld/config"
	"github.com/milk9111/anewworld/logger"
)

func main() {
	if err := run(); err != nil {
		logger.Log.WithError(err).Error("game exited")
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default anewworld.yaml if present)")
	mapName := flag.String("map", "", "map to start on, e.g. village")
	seed := flag.Int64("seed", 0, "rng seed for NPC behavior; 0 keeps the configured seed")
	contentDir := flag.String("content", "", "directory of content JSON overriding the embedded data")
	debug := flag.Bool("debug", false, "enable the debug overlay and debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *mapName != "" {
		cfg.Game.StartMap = *mapName
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *contentDir != "" {
		cfg.Game.ContentDir = *contentDir
	}
	if *debug {
		cfg.Game.Debug = true
		cfg.Log.Level = "debug"
	}

	session := uuid.NewString()
	logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
		Session: session,
	})
	logger.Log.WithField("map", cfg.Game.StartMap).WithField("seed", cfg.Game.Seed).Info("starting")

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Game.TPS)

	game, err := NewGame(cfg)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
