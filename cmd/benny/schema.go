package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"benny/internal/config"
	"benny/internal/storage"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the servers and users databases and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			dbs, err := storage.OpenAll(cmd.Context(), cfg.ServersDBPath, cfg.UsersDBPath)
			if err != nil {
				return err
			}
			log.Info().
				Str("servers", cfg.ServersDBPath).
				Str("users", cfg.UsersDBPath).
				Msg("Schemas ready")
			return dbs.Close()
		},
	}
}
