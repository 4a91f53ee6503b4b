package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/infra/dependency"
)

type recomputeOptions struct {
	userID string
	dryRun bool
}

func newRecomputeCmd() *cobra.Command {
	opts := &recomputeOptions{}

	cmd := &cobra.Command{
		Use:   "recompute-progress",
		Short: "Recompute cached goal progress against the current period",
		Long: `Recurring completions expire at day, week and month boundaries without
touching the stored goal. recompute-progress re-evaluates every goal and
reports the ones whose stored progress or status no longer matched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecompute(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.userID, "user", "", "Only recompute goals owned by this user ID")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report stale goals without saving")
	return cmd
}

func runRecompute(cmd *cobra.Command, opts *recomputeOptions) error {
	input := goal.RecomputeGoalsInput{DryRun: opts.dryRun}
	if opts.userID != "" {
		id, err := uuid.Parse(opts.userID)
		if err != nil {
			return fmt.Errorf("invalid --user %q: %w", opts.userID, err)
		}
		input.UserID = &id
	}

	cfg, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	injector, err := dependency.NewInjector(cfg, database.DB(), nil)
	if err != nil {
		return err
	}

	output, err := injector.RecomputeGoals.Execute(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("recompute failed: %w", err)
	}

	printRecompute(cmd, output, opts.dryRun)
	if output.Failed > 0 {
		return fmt.Errorf("%d goal(s) could not be recomputed", output.Failed)
	}
	return nil
}

func printRecompute(cmd *cobra.Command, output *goal.RecomputeGoalsOutput, dryRun bool) {
	out := cmd.OutOrStdout()

	if len(output.Stale) > 0 {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GOAL\tTITLE\tSTORED\tRECOMPUTED")
		for _, s := range output.Stale {
			fmt.Fprintf(w, "%s\t%s\t%d%% %s\t%d%% %s\n",
				s.GoalID, s.Title, s.StoredProgress, s.StoredStatus, s.Progress, s.Status)
		}
		w.Flush()
	}

	verb := "updated"
	if dryRun {
		verb = "would update"
	}
	fmt.Fprintf(out, "checked %d goal(s), %s %d, failed %d\n",
		output.Checked, verb, len(output.Stale), output.Failed)
}
