package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noxshift/models"
	"noxshift/parser"
	"noxshift/store"
)

// shiftSource selects where a command reads its roster from: CSV files
// when --input is given, the roster database otherwise.
type shiftSource struct {
	inputs []string
	dbPath string
	from   string
	to     string
}

func (s *shiftSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.inputs, "input", "i", nil, "roster CSV file (repeatable)")
	cmd.Flags().StringVar(&s.dbPath, "db", "", "roster database (default from config)")
	cmd.Flags().StringVar(&s.from, "from", "", "first date to read from the database (YYYY-MM-DD)")
	cmd.Flags().StringVar(&s.to, "to", "", "last date to read from the database (YYYY-MM-DD)")
}

func (s *shiftSource) load(ctx context.Context, rootOpts *RootOptions) ([]models.ShiftRecord, error) {
	logger := rootOpts.logger()

	if len(s.inputs) > 0 {
		shifts, err := parser.ParseFiles(ctx, s.inputs)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read roster", err)
		}
		logger.Debug("Roster parsed", zap.Strings("files", s.inputs), zap.Int("shifts", len(shifts)))
		return shifts, nil
	}

	from, to, err := s.dateRange()
	if err != nil {
		return nil, err
	}

	dbPath := s.dbPath
	if dbPath == "" {
		dbPath = rootOpts.settings().DatabasePath
	}
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	shifts, err := st.ListShifts(ctx, from, to)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load shifts", err)
	}
	return shifts, nil
}

// dateRange parses --from/--to. Missing bounds leave the range open.
func (s *shiftSource) dateRange() (time.Time, time.Time, error) {
	from := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	var err error
	if s.from != "" {
		if from, err = time.Parse(models.DateLayout, s.from); err != nil {
			return from, to, WrapExitError(ExitCommandError, "invalid --from", err)
		}
	}
	if s.to != "" {
		if to, err = time.Parse(models.DateLayout, s.to); err != nil {
			return from, to, WrapExitError(ExitCommandError, "invalid --to", err)
		}
	}
	if to.Before(from) {
		return from, to, NewExitError(ExitCommandError, "--to is before --from")
	}
	return from, to, nil
}
