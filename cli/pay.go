package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	customerrors "noxshift/errors"
	"noxshift/formatter"
	"noxshift/models"
	"noxshift/pay"
)

type payOptions struct {
	date        string
	start       string
	end         string
	rate        float64
	weeklyHours float64
	hazard      bool
	onCall      bool
}

// NewPayCommand creates the pay command.
func NewPayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &payOptions{}

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Calculate pay for a single shift",
		Long: `Calculate base pay and every applicable differential for one shift.

Overtime is paid on the part of the shift that takes the week past 40 hours,
given --weekly-hours already worked before it.`,
		Example: `  noxshift pay --date 2024-12-25 --start 22:00 --end 06:00 --rate 20
  noxshift pay --date 2024-01-09 --start 09:00 --end 17:00 --rate 25 --weekly-hours 36 --hazard`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPay(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "shift date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.start, "start", "", "start time (HH:MM, 24-hour)")
	cmd.Flags().StringVar(&opts.end, "end", "", "end time (HH:MM, 24-hour); earlier than start means next day")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "base hourly rate")
	cmd.Flags().Float64Var(&opts.weeklyHours, "weekly-hours", 0, "hours already worked this week")
	cmd.Flags().BoolVar(&opts.hazard, "hazard", false, "hazard duty shift")
	cmd.Flags().BoolVar(&opts.onCall, "oncall", false, "on-call shift")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func runPay(rootOpts *RootOptions, opts *payOptions, cmd *cobra.Command) error {
	logger := rootOpts.logger()

	date, err := time.Parse(models.DateLayout, opts.date)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --date", fmt.Errorf("%w: %v", customerrors.ErrInvalidDate, err))
	}

	result, err := pay.CalculatePay(date, opts.start, opts.end, opts.rate, opts.weeklyHours,
		pay.Options{IsHazard: opts.hazard, IsOnCall: opts.onCall})
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot calculate pay", err)
	}

	logger.Debug("Shift paid",
		zap.String("date", opts.date),
		zap.Float64("hours", result.BaseHours),
		zap.Int("differentials", len(result.Differentials)),
		zap.Float64("total", result.TotalPay))

	return rootOpts.render(cmd.OutOrStdout(),
		func() string { return formatter.FormatPayText(result) },
		func() string { return formatter.FormatPayJSON(result) },
		func() string { return formatter.FormatPayCSV(result) },
	)
}
