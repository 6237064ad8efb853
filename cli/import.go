package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noxshift/parser"
	"noxshift/store"
)

type importOptions struct {
	inputs []string
	dbPath string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store roster CSV files in the roster database",
		Long: `Parse roster CSV files and store their shifts in the SQLite roster
database. Every file is parsed before anything is written; all shifts are
written in one transaction.`,
		Example:       `  noxshift import --input week1.csv --input week2.csv --db roster.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", nil, "roster CSV file (repeatable)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "roster database (default from config)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runImport(rootOpts *RootOptions, opts *importOptions, cmd *cobra.Command) error {
	logger := rootOpts.logger()
	ctx := cmd.Context()

	shifts, err := parser.ParseFiles(ctx, opts.inputs)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read roster", err)
	}

	dbPath := opts.dbPath
	if dbPath == "" {
		dbPath = rootOpts.settings().DatabasePath
	}
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if err := st.AddShifts(ctx, shifts); err != nil {
		return WrapExitError(ExitCommandError, "failed to store shifts", err)
	}

	total, err := st.CountShifts(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count shifts", err)
	}

	logger.Info("Roster imported", zap.String("db", dbPath), zap.Int("shifts", len(shifts)), zap.Int("stored", total))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d shift(s) into %s (%d stored)\n", len(shifts), dbPath, total)
	return err
}
