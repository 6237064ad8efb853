package cli

import (
	"github.com/spf13/cobra"

	"noxshift/formatter"
	"noxshift/models"
	"noxshift/pay"
)

type warnOptions struct {
	weekly   float64
	proposed float64
	start    string
	end      string
}

// NewWarnCommand creates the warn command.
func NewWarnCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &warnOptions{}

	cmd := &cobra.Command{
		Use:   "warn",
		Short: "Check whether a proposed shift approaches overtime",
		Long: `Check a proposed shift against the hours already worked this week.

Warns from 35 projected hours and grades overtime past 40 hours as low,
medium (over 4h) or high (over 8h). The proposed length is --proposed hours,
or the span between --start and --end.`,
		Example: `  noxshift warn --weekly 36 --proposed 8
  noxshift warn --weekly 30 --start 22:00 --end 06:00`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWarn(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.weekly, "weekly", 0, "hours already worked this week")
	cmd.Flags().Float64Var(&opts.proposed, "proposed", 0, "length of the proposed shift in hours")
	cmd.Flags().StringVar(&opts.start, "start", "", "proposed start time (HH:MM)")
	cmd.Flags().StringVar(&opts.end, "end", "", "proposed end time (HH:MM)")
	cmd.MarkFlagsRequiredTogether("start", "end")
	cmd.MarkFlagsMutuallyExclusive("proposed", "start")

	return cmd
}

func runWarn(rootOpts *RootOptions, opts *warnOptions, cmd *cobra.Command) error {
	if opts.weekly < 0 || opts.proposed < 0 {
		return NewExitError(ExitCommandError, "hours must not be negative")
	}

	proposed := opts.proposed
	if opts.start != "" {
		start, err := models.ParseClock(opts.start)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --start", err)
		}
		end, err := models.ParseClock(opts.end)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --end", err)
		}
		proposed = pay.CalculateShiftHours(start, end)
	}

	warning := pay.CheckOvertimeWarning(opts.weekly, proposed)
	return rootOpts.render(cmd.OutOrStdout(),
		func() string { return formatter.FormatWarningText(warning) },
		func() string { return formatter.FormatWarningJSON(warning) },
		func() string { return formatter.FormatWarningCSV(warning) },
	)
}
