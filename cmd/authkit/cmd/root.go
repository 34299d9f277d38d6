package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "authkit",
	Short: "authkit serves session and remember-me authentication over HTTP",
	Long: `authkit is a small HTTP service that signs users up, logs them in and
keeps them logged in across browser restarts with a persistent cookie.
Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
