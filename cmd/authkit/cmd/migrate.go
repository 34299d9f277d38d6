package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/core/config"
	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/user"
	"github.com/dmitrymomot/authkit/integration/database/pg"
)

type migrateConfig struct {
	DB      pg.Config
	AppName string `env:"APP_NAME" envDefault:"authkit"`
	Env     string `env:"APP_ENV" envDefault:"development"`
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending PostgreSQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var cfg migrateConfig
		if err := config.Load(&cfg); err != nil {
			return err
		}
		log := logger.NewFromEnv(cfg.Env, cfg.AppName)

		pool, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pg.Migrate(ctx, pool, user.Migrations, cfg.DB, log.With(logger.Component("migration"))); err != nil {
			return err
		}

		log.InfoContext(ctx, "migrations applied", logger.Component("migration"))
		return nil
	},
}
