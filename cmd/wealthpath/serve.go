package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/wealthpath/internal/api"
	"github.com/rgehrsitz/wealthpath/internal/config"
	"github.com/rgehrsitz/wealthpath/internal/tui"
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	var (
		addr    string
		envFile string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection engine over HTTP",
		Long: `Serve the projection engine over HTTP until SIGINT or SIGTERM.

Settings are read from WEALTHPATH_ADDR, WEALTHPATH_LOG_FORMAT and
WEALTHPATH_SHUTDOWN_TIMEOUT, after loading --env-file (default .env) if present.
--addr overrides WEALTHPATH_ADDR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, loaded := config.LoadServerConfig(files...)
			if !loaded && envFile != "" {
				c.logger.Warnf("env file %s not found", envFile)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if !cmd.Flags().Changed("log-format") && cfg.LogFormat != c.logFormat {
				logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogFormat, c.debug)
				if err != nil {
					return err
				}
				c.logger = logger
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(c.newEngine(), c.logger)
			srv.ShutdownTimeout = cfg.ShutdownTimeout
			if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
				return err
			}
			c.logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Environment file to load (default .env)")
	return cmd
}

func (c *cli) tuiCmd() *cobra.Command {
	var run runFlags
	cmd := &cobra.Command{
		Use:   "tui [input-file]",
		Short: "Explore a plan interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := run.options()
			if err != nil {
				return err
			}
			inputs, err := loadInputs(args[0])
			if err != nil {
				return err
			}
			// The alternate screen owns the terminal, so the engine stays quiet.
			engine := c.newEngine()
			engine.SetLogger(nil)
			engine.DebtModel = opts.DebtModel
			engine.Strategy = opts.Strategy
			return tui.Run(tui.NewModel(engine, *inputs, args[0], opts))
		},
	}
	run.register(cmd)
	return cmd
}
