package main

import (
	"github.com/justsurfingit/jobboard/internal/database"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}
		db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		log.Info().Msg("migrations complete")
		return nil
	},
}
