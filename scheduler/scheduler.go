// Package scheduler runs the engine over a roster: it pays every worked
// shift, scans the roster for conflicts and checks spend against the budget.
package scheduler

import (
	"time"

	"github.com/google/uuid"

	"noxshift/budget"
	"noxshift/conflicts"
	"noxshift/metrics"
	"noxshift/models"
	"noxshift/pay"
)

// Options tunes a report run.
type Options struct {
	// MonthlyBudget enables the budget section when non-zero.
	MonthlyBudget float64
	// AsOf is the day the budget is measured at. Zero means the run time.
	AsOf time.Time
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// GenerateReport pays the roster and collects its conflicts into a report
// with a fresh run ID. The input slice is not modified.
func GenerateReport(shifts []models.ShiftRecord, opts Options) (*models.Report, error) {
	started := time.Now()
	defer func() {
		metrics.EngineDurationSeconds.Observe(time.Since(started).Seconds())
	}()

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	generatedAt := now().UTC()

	roster, err := pay.CalculateRoster(shifts)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:          uuid.NewString(),
		GeneratedAt: generatedAt,
		Shifts:      roster.Shifts,
		Weekly:      roster.Weekly,
		Conflicts:   conflicts.DetectConflicts(shifts),
	}

	if opts.MonthlyBudget != 0 {
		asOf := opts.AsOf
		if asOf.IsZero() {
			asOf = generatedAt
		}
		status, err := budget.Summarize(roster.Shifts, opts.MonthlyBudget, asOf)
		if err != nil {
			return nil, err
		}
		report.Budget = &status
	}

	metrics.ObserveReport(report)
	return report, nil
}
