package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifescope/backend/internal/integration/persistence"
)

func newPurgeTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-tokens",
		Short: "Delete expired sessions and spent password reset tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			purged, err := persistence.NewTokenRepository(database.DB()).PurgeExpired(cmd.Context(), time.Now())
			if err != nil {
				return fmt.Errorf("purge failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "purged %d token(s)\n", purged)
			return nil
		},
	}
}
