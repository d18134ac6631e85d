package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"academy-service/internal/config"
	"academy-service/internal/repository"
	"academy-service/internal/repository/mongostore"
	"academy-service/internal/repository/sqlstore"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "Jedi academy recruitment service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("No %s file found, using system env", envFile)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to an env file loaded before reading configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore connects to the backend selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Driver {
	case sqlstore.DriverSQLite, sqlstore.DriverPostgres:
		store, err := sqlstore.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "mongo":
		store, err := mongostore.Open(ctx, mongostore.Config{
			URI:      cfg.MongoDB.URI,
			Database: cfg.MongoDB.Database,
			PoolSize: cfg.MongoDB.PoolSize,
			Timeout:  cfg.MongoDB.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
