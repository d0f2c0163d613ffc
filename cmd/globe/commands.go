package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/config"
	"github.com/Faultbox/globe/internal/engine/animation"
	"github.com/Faultbox/globe/internal/geo"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/scene"
	"github.com/Faultbox/globe/internal/server"
	"github.com/Faultbox/globe/internal/terminal"
)

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "globe",
		Short: "Render an ASCII globe in your terminal",
		Long: `globe renders a rotating, textured ASCII globe in your terminal.

Interactive controls:
  +/-          globe rotation speed
  ,/.          camera rotation speed
  h/j/k/l      move the camera (arrow keys work too)
  PgUp/PgDn    zoom out/in (mouse wheel works too)
  drag         move the camera with the mouse
  n            toggle the night side
  Enter        return to the starting location
  q, Esc       quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, m, err := c.setup(true)
			if err != nil {
				return err
			}
			return runTUI(cmd, cfg, m, terminal.Interactive, nil)
		},
	}
	c.flags = config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newScreensaverCmd(c),
		newListCmd(c),
		newFrameCmd(c),
		newServeCmd(c),
		newConfigCmd(c),
	)
	return root
}

func newScreensaverCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "screensaver",
		Aliases: []string{"s"},
		Short:   "Animate the globe until a key is pressed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, m, err := c.setup(true)
			if err != nil {
				return err
			}
			return runTUI(cmd, cfg, m, terminal.Screensaver, nil)
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	var pipe bool
	cmd := &cobra.Command{
		Use:   "list [locations]",
		Short: "Fly to each location in turn",
		Long: `list flies the camera to each location in a ";"-separated list.

Locations are normalized "x,y" pairs in [0, 1] unless --signed is given, in
which case they are "lon,lat" degrees. With --geoip-db a record may also be
an IP address. Any key moves on to the next location; c or d quits.`,
		Example: `  globe list "0.5,0.5;0.8,0.3"
  echo "-0.12,51.5;-74,40.7" | globe list -p --signed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, m, err := c.setup(true)
			if err != nil {
				return err
			}

			var input string
			switch {
			case pipe:
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading locations: %w", err)
				}
				input = string(data)
			case len(args) == 1:
				input = args[0]
			default:
				return errors.New("no locations: pass a list or use --pipe")
			}

			coords, err := resolveLocations(cfg, input)
			if err != nil {
				return err
			}
			if len(coords) == 0 {
				return errors.New("no locations in input")
			}
			return runTUI(cmd, cfg, m, terminal.Listing, coords)
		},
	}
	cmd.Flags().BoolVarP(&pipe, "pipe", "p", false, "read locations from stdin")
	c.flags.RegisterPlaybackFlags(cmd.Flags())
	return cmd
}

func resolveLocations(cfg *config.Config, input string) ([]animation.Coord, error) {
	var loc geo.Locator
	if cfg.Playback.GeoIPDB != "" {
		r, err := geo.Open(cfg.Playback.GeoIPDB)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		loc = r
	}
	return geo.ResolveRecords(strings.TrimSpace(input), cfg.CoordFormat(), loc)
}

func newFrameCmd(c *cli) *cobra.Command {
	var cols, rows int
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print a single frame and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, m, err := c.setup(false)
			if err != nil {
				return err
			}
			sc, err := scene.New(cfg, m)
			if err != nil {
				return err
			}
			cv, err := sc.Canvas(cols, rows)
			if err != nil {
				return err
			}
			sc.Tick(0, time.Now())
			sc.Draw(cv)
			_, err = io.WriteString(cmd.OutOrStdout(), cv.String())
			return err
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 80, "terminal columns")
	cmd.Flags().IntVar(&rows, "rows", 24, "terminal rows")
	return cmd
}

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the screensaver over SSH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, m, err := c.setup(false)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer m.Close()

			srv, err := server.New(cfg, m)
			if err != nil {
				return err
			}
			logger.Info("serving globe", zap.String("addr", cfg.Server.Addr))
			return srv.ListenAndServe(cmd.Context())
		},
	}
	c.flags.RegisterServerFlags(cmd.Flags())
	return cmd
}

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the current settings to a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.flags.Config, c.flags)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
				err = cfg.SaveTo(path)
			} else {
				path, err = cfg.Save()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}
