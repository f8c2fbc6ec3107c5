// cmd/benny/main.go
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"benny/internal/config"
	"benny/internal/logging"
)

const appName = "benny"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Exiting")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           appName,
		Short:         "Discord bot with pluggable cogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			_, err = logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file (optional)")

	root.AddCommand(newSchemaCmd())
	return root
}
