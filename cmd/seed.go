package main

import (
	"fmt"

	"academy-service/internal/config"
	"academy-service/internal/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load planets, Jedi, questions and orders from a fixture file",
	Long: `Load planets, Jedi, questions, orders and candidates from a YAML fixture.

The fixture is validated before anything is written. A run that fails
afterwards, for example on a duplicate order code, is not rolled back:
records created before the failure stay in the store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		fixture, err := seed.LoadFile(path)
		if err != nil {
			return err
		}

		cfg := config.Load()
		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		res, err := seed.Apply(cmd.Context(), store, fixture, cfg.Academy.PadawanLimit)
		if err != nil {
			color.Yellow("partially seeded: %s", res)
			return err
		}
		color.Green("✓ seeded %s", res)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("file", "fixtures/academy.yaml", "Fixture file to load")
}
