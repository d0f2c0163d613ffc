package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/assets"
	"github.com/Faultbox/globe/internal/config"
	"github.com/Faultbox/globe/internal/engine/animation"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/scene"
	"github.com/Faultbox/globe/internal/terminal"
)

// stderr receives console logs outside the full-screen modes.
var stderr io.Writer = os.Stderr

// cli holds state shared by every command.
type cli struct {
	flags *config.Flags
}

// setup loads configuration and starts logging. Full-screen modes log only
// to the log file since the screen belongs to the globe.
func (c *cli) setup(fullScreen bool) (*config.Config, *assets.Manager, error) {
	cfg, err := config.Load(c.flags.Config, c.flags)
	if err != nil {
		return nil, nil, err
	}

	var fileCfg logger.FileConfig
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	var console io.Writer = stderr
	if fullScreen {
		console = nil
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, console); err != nil {
		return nil, nil, fmt.Errorf("starting logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)

	m := assets.NewManager(cfg.Globe.Palette)
	if err := m.SetCharset(cfg.Globe.Charset); err != nil {
		return nil, nil, err
	}
	for _, dir := range cfg.TextureDirs() {
		if err := m.AddDir(dir); err != nil {
			return nil, nil, err
		}
		logger.Sugar.Debugf("texture dir: %s", dir)
	}
	return cfg, m, nil
}

func runTUI(cmd *cobra.Command, cfg *config.Config, m *assets.Manager, mode terminal.Mode, coords []animation.Coord) error {
	defer logger.Sync()
	defer m.Close()

	sc, err := scene.New(cfg, m)
	if err != nil {
		return err
	}
	if coords != nil {
		sc.Controller().Play(coords)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer screen.Fini()

	app, err := terminal.New(screen, sc, mode)
	if err != nil {
		return err
	}
	if err := app.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("terminal", zap.Error(err))
		return err
	}
	return nil
}
