package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lifescope/backend/internal/integration/persistence/model"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
