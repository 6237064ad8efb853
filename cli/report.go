package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noxshift/formatter"
	"noxshift/models"
	"noxshift/scheduler"
)

type reportOptions struct {
	source shiftSource
	budget float64
	asOf   string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Pay a roster and report totals, conflicts and budget",
		Long: `Pay every worked shift of a roster with weekly overtime tracked per
employee, list weekly totals and conflicts, and, when a monthly budget is
set, compare month-to-date spend with the budget.`,
		Example: `  noxshift report --input january.csv --budget 50000 --as-of 2024-01-15
  noxshift report --db roster.db --from 2024-01-01 --to 2024-01-31 --format csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(rootOpts, opts, cmd)
		},
	}

	opts.source.addFlags(cmd)
	cmd.Flags().Float64Var(&opts.budget, "budget", 0, "monthly labor budget; 0 disables (default from config)")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "day to measure the budget at (YYYY-MM-DD, default today)")

	return cmd
}

func runReport(rootOpts *RootOptions, opts *reportOptions, cmd *cobra.Command) error {
	logger := rootOpts.logger()

	shifts, err := opts.source.load(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}

	runOpts := scheduler.Options{MonthlyBudget: opts.budget}
	if !cmd.Flags().Changed("budget") {
		runOpts.MonthlyBudget = rootOpts.settings().MonthlyBudget
	}
	if opts.asOf != "" {
		asOf, err := time.Parse(models.DateLayout, opts.asOf)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --as-of", err)
		}
		runOpts.AsOf = asOf
	}

	report, err := scheduler.GenerateReport(shifts, runOpts)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot build report", err)
	}

	logger.Info("Report generated",
		zap.String("report_id", report.ID),
		zap.Int("shifts", len(report.Shifts)),
		zap.Int("conflicts", len(report.Conflicts)))

	return rootOpts.render(cmd.OutOrStdout(),
		func() string { return formatter.FormatText(report) },
		func() string { return formatter.FormatJSON(report) },
		func() string { return formatter.FormatCSV(report) },
	)
}
