package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifescope/backend/internal/domain/valueobject"
)

const dateLayout = "2006-01-02"

type evaluateOptions struct {
	frequency string
	last      string
	now       string
	timezone  string
	completed bool
}

func newEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Show whether an activity counts as completed right now",
		Example: `  lifescopectl evaluate --frequency weekly --last 2024-12-30T12:00:00Z --now 2025-01-02T12:00:00Z
  lifescopectl evaluate --frequency once --completed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.frequency, "frequency", "", "Activity frequency (daily, weekly, monthly, once)")
	cmd.Flags().StringVar(&opts.last, "last", "", "Last completion instant, RFC 3339 or YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.now, "now", "", "Evaluation instant, RFC 3339 or YYYY-MM-DD (default current time)")
	cmd.Flags().StringVar(&opts.timezone, "tz", "UTC", "IANA timezone whose calendar defines the periods")
	cmd.Flags().BoolVar(&opts.completed, "completed", false, "Value of the legacy completion flag")
	_ = cmd.MarkFlagRequired("frequency")
	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	frequency, ok := valueobject.ParseFrequency(opts.frequency)
	if !ok {
		return fmt.Errorf("invalid --frequency %q: must be one of Daily, Weekly, Monthly, Once", opts.frequency)
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid --tz %q: %w", opts.timezone, err)
	}

	now := time.Now().In(loc)
	if opts.now != "" {
		if now, err = parseInstant(opts.now, loc); err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
	}

	record := valueobject.CompletionRecord{IsCompleted: opts.completed}
	if opts.last != "" {
		last, err := parseInstant(opts.last, loc)
		if err != nil {
			return fmt.Errorf("invalid --last: %w", err)
		}
		record.LastCompletedAt = &last
	}

	done := record.IsCurrentlyCompleted(frequency, now)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "frequency:\t%s\n", frequency)
	fmt.Fprintf(w, "now:\t%s\n", now.Format(time.RFC3339))
	if record.HasTimestamp() {
		fmt.Fprintf(w, "last completed:\t%s\n", record.LastCompletedAt.In(loc).Format(time.RFC3339))
	} else {
		fmt.Fprintf(w, "last completed:\tnever recorded\n")
	}
	fmt.Fprintf(w, "completed flag:\t%t\n", record.IsCompleted)
	if start, end := valueobject.PeriodBounds(frequency, now); !start.IsZero() {
		fmt.Fprintf(w, "period:\t%s to %s\n", start.Format(dateLayout), end.AddDate(0, 0, -1).Format(dateLayout))
	}
	fmt.Fprintf(w, "basis:\t%s\n", evaluationBasis(frequency, record))
	fmt.Fprintf(w, "result:\t%s\n", resultLabel(done))
	return w.Flush()
}

func evaluationBasis(frequency valueobject.Frequency, record valueobject.CompletionRecord) string {
	switch {
	case !record.HasTimestamp():
		return "completion flag (no timestamp)"
	case frequency.IsRecurring():
		return "timestamp within current period"
	default:
		return "completion flag (non-recurring)"
	}
}

func resultLabel(done bool) string {
	if done {
		return "completed"
	}
	return "pending"
}

// parseInstant accepts RFC 3339 or a bare date interpreted at midnight in loc.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC 3339 nor YYYY-MM-DD", s)
	}
	return t, nil
}
