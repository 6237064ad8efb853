package scheduler_test

import (
	"errors"
	"testing"
	"time"

	customerrors "noxshift/errors"
	"noxshift/metrics"
	"noxshift/models"
	"noxshift/scheduler"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shift(id, name string, day int, start, end models.ClockTime) models.ShiftRecord {
	return models.ShiftRecord{
		EmployeeID:   id,
		EmployeeName: name,
		Date:         time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		StartTime:    start,
		EndTime:      end,
		BaseRate:     20,
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 10, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
}

func TestGenerateReport(t *testing.T) {
	// Tuesday 2024-01-09: Ada works a night shift twice over, Grace a day shift.
	shifts := []models.ShiftRecord{
		shift("e1", "Ada", 9, models.NewClockTime(22, 0), models.NewClockTime(6, 0)),
		shift("e1", "Ada", 9, models.NewClockTime(23, 0), models.NewClockTime(3, 0)),
		shift("e2", "Grace", 9, models.NewClockTime(9, 0), models.NewClockTime(17, 0)),
	}

	tests := map[string]struct {
		opts       scheduler.Options
		wantBudget bool
		alert      models.BudgetAlert
	}{
		"NoBudget":        {opts: scheduler.Options{Now: fixedClock}},
		"BudgetAtRunTime": {opts: scheduler.Options{Now: fixedClock, MonthlyBudget: 10000}, wantBudget: true, alert: models.BudgetOK},
		"BudgetAsOfTight": {opts: scheduler.Options{Now: fixedClock, MonthlyBudget: 1000, AsOf: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)}, wantBudget: true, alert: models.BudgetOver},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			report, err := scheduler.GenerateReport(shifts, tt.opts)
			require.NoError(t, err)

			_, err = uuid.Parse(report.ID)
			assert.NoError(t, err)
			assert.Equal(t, time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC), report.GeneratedAt)

			require.Len(t, report.Shifts, 3)
			// 8h night, 4h night and 8h day shift at $20.
			assert.InDelta(t, 184, report.Shifts[0].Pay.TotalPay, 1e-9)
			assert.InDelta(t, 92, report.Shifts[1].Pay.TotalPay, 1e-9)
			assert.InDelta(t, 160, report.Shifts[2].Pay.TotalPay, 1e-9)
			require.Len(t, report.Weekly, 2)

			var doubleBooked, understaffed int
			for _, c := range report.Conflicts {
				switch c.Type {
				case models.ConflictDoubleBooking:
					doubleBooked++
				case models.ConflictUnderstaffing:
					understaffed++
				}
			}
			assert.Equal(t, 1, doubleBooked)
			assert.Equal(t, 0, understaffed)

			assert.Equal(t, 436.0, testutil.ToFloat64(metrics.PayTotal))

			if !tt.wantBudget {
				assert.Nil(t, report.Budget)
				return
			}
			require.NotNil(t, report.Budget)
			assert.InDelta(t, 436, report.Budget.Spent, 1e-9)
			assert.Equal(t, tt.alert, report.Budget.Alert)
		})
	}
}

func TestGenerateReport_DistinctIDs(t *testing.T) {
	a, err := scheduler.GenerateReport(nil, scheduler.Options{})
	require.NoError(t, err)
	b, err := scheduler.GenerateReport(nil, scheduler.Options{})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Empty(t, a.Shifts)
	assert.NotNil(t, a.Conflicts)
}

func TestGenerateReport_Errors(t *testing.T) {
	tests := map[string]struct {
		shifts []models.ShiftRecord
		opts   scheduler.Options
		err    error
	}{
		"BadRate": {
			shifts: []models.ShiftRecord{{EmployeeID: "e1", EmployeeName: "Ada", Date: time.Now(), BaseRate: 0}},
			err:    customerrors.ErrInvalidRate,
		},
		"NegativeBudget": {
			opts: scheduler.Options{MonthlyBudget: -5},
			err:  customerrors.ErrInvalidBudget,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			report, err := scheduler.GenerateReport(tt.shifts, tt.opts)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}
