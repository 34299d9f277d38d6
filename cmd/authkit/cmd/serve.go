package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/app/web"
	"github.com/dmitrymomot/authkit/core/config"
	"github.com/dmitrymomot/authkit/core/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var cfg web.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		app, err := web.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		log := app.Logger()
		log.InfoContext(ctx, "authkit starting",
			logger.Component("cmd"),
			logger.Event("serve"),
		)

		if err := app.Run(ctx); err != nil {
			log.ErrorContext(ctx, "server stopped with error", logger.Component("cmd"), logger.Error(err))
			return err
		}

		log.InfoContext(ctx, "authkit stopped", logger.Component("cmd"))
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides SERVER_ADDR")
}
