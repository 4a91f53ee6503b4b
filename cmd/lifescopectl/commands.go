package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/infra/db"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lifescopectl",
		Short: "Maintenance commands for the LifeScope backend",
		Long: `lifescopectl runs database migrations, repairs cached goal progress,
purges old email jobs and dead tokens, and explains how the completion evaluator treats
an activity.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newRecomputeCmd(),
		newEvaluateCmd(),
		newPurgeEmailsCmd(),
		newPurgeTokensCmd(),
	)
	return rootCmd
}

// openDatabase connects using the environment configuration.
func openDatabase() (*config.Config, *db.Database, error) {
	cfg := config.Load()
	database, err := db.Open(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, database, nil
}
