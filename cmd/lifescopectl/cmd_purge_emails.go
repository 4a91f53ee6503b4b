package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifescope/backend/internal/integration/persistence"
)

const defaultEmailRetention = 30 * 24 * time.Hour

func newPurgeEmailsCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge-emails",
		Short: "Delete sent and failed email jobs past the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("invalid --older-than %s: must be positive", olderThan)
			}

			_, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			cutoff := time.Now().Add(-olderThan)
			purged, err := persistence.NewEmailQueueRepository(database.DB()).PurgeFinished(cmd.Context(), cutoff)
			if err != nil {
				return fmt.Errorf("purge failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "purged %d email(s) processed before %s\n", purged, cutoff.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", defaultEmailRetention, "Only purge jobs processed longer ago than this")
	return cmd
}
