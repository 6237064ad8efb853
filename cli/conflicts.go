package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noxshift/conflicts"
	"noxshift/formatter"
	"noxshift/metrics"
	"noxshift/models"
)

// NewConflictsCommand creates the conflicts command.
func NewConflictsCommand(rootOpts *RootOptions) *cobra.Command {
	src := &shiftSource{}

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Check a roster for scheduling conflicts",
		Long: `Check a roster for double-booked employees, weekly overtime and
understaffed days. Exits with status 1 when any error-severity conflict
(double-booking) is found.`,
		Example: `  noxshift conflicts --input week1.csv --input week2.csv
  noxshift conflicts --db roster.db --from 2024-01-01 --to 2024-01-31 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConflicts(rootOpts, src, cmd)
		},
	}
	src.addFlags(cmd)

	return cmd
}

func runConflicts(rootOpts *RootOptions, src *shiftSource, cmd *cobra.Command) error {
	logger := rootOpts.logger()

	shifts, err := src.load(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}

	found := conflicts.DetectConflicts(shifts)
	metrics.ObserveConflicts(found)

	blocking := 0
	for _, c := range found {
		if c.Severity == models.SeverityError {
			blocking++
		}
	}
	logger.Debug("Conflicts detected",
		zap.Int("shifts", len(shifts)),
		zap.Int("conflicts", len(found)),
		zap.Int("blocking", blocking))

	err = rootOpts.render(cmd.OutOrStdout(),
		func() string { return formatter.FormatConflictsText(found) },
		func() string { return formatter.FormatConflictsJSON(found) },
		func() string { return formatter.FormatConflictsCSV(found) },
	)
	if err != nil {
		return err
	}
	if blocking > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d blocking conflict(s)", blocking))
	}
	return nil
}
