package main

import (
	"fmt"

	"academy-service/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables, collections and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		color.Green("✓ %s schema is up to date", cfg.Store.Driver)
		return nil
	},
}
