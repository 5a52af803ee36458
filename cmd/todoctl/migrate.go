package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"todo-assistant/internal/app"
	"todo-assistant/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Long: `Create or upgrade the database schema for the configured driver.

Examples:
  todoctl migrate
  DATABASE_URL=postgres://localhost/todo todoctl migrate -c config/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Migrate explicitly below, whatever auto_migrate says.
	cfg.Database.AutoMigrate = false

	ctx := cmd.Context()
	deps, err := app.BuildStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	if err := database.Migrate(ctx, deps.DB, deps.Driver); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s)\n", deps.Driver)
	return nil
}
