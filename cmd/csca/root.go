package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"csca/internal/app"
	"csca/internal/config"
	"csca/internal/logs"
	"csca/internal/tui"
)

// cli carries the state shared between the root command and its children.
type cli struct {
	configPath string
	flags      *config.Config
	set        map[string]string

	cfg      *config.Config
	log      *slog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	c := &cli{flags: config.DefaultConfig()}

	root := &cobra.Command{
		Use:           "csca",
		Short:         "circular-shift recurrence explorer",
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(c.cfg, c.log)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The terminal UI owns the screen, so it only logs to a file.
			var w io.Writer = cmd.ErrOrStderr()
			if cmd.Name() == "tui" {
				w = nil
			}
			return c.setup(cmd, w)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.closeLog == nil {
				return nil
			}
			return c.closeLog()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file")
	pf.StringToStringVar(&c.set, "set", nil, "override settings, e.g. --set a=0.25,d=0.5")
	c.flags.Bind(pf)

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "explore the recurrence in the terminal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return tui.Run(c.cfg, c.log)
			},
		},
		newRenderCmd(c),
		newStatsCmd(c),
	)
	return root
}

// setup resolves the configuration from the defaults, the config file, the
// flags set on the command line and --set, in that order, and opens the
// logger.
func (c *cli) setup(cmd *cobra.Command, w io.Writer) error {
	cfg := config.DefaultConfig()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ReplayFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(c.set); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logs.New(logs.Options{Level: cfg.Log.Level, Writer: w, File: cfg.Log.File})
	if err != nil {
		return err
	}
	c.cfg, c.log, c.closeLog = cfg, log, closeLog
	log.Debug("configuration resolved",
		"width", cfg.Canvas.Width, "height", cfg.Canvas.Height, "seed", cfg.Seed,
		"a", cfg.Params.A, "b", cfg.Params.B, "c", cfg.Params.C, "d", cfg.Params.D)
	return nil
}
