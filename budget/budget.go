// Package budget compares month-to-date labor spend against a monthly budget
// and projects month-end spend by linear extrapolation.
package budget

import (
	"fmt"
	"math"
	"time"

	customerrors "noxshift/errors"
	"noxshift/models"
)

// WatchRatio is the share of the budget at which spend is flagged for review.
const WatchRatio = 0.9

// Summarize sums the pay of every shift dated in asOf's month, up to and
// including asOf, and projects the month's spend from the days elapsed.
// A zero budget disables alerting.
func Summarize(shifts []models.ShiftPay, monthlyBudget float64, asOf time.Time) (models.BudgetStatus, error) {
	if math.IsNaN(monthlyBudget) || monthlyBudget < 0 {
		return models.BudgetStatus{}, fmt.Errorf("%w: %v", customerrors.ErrInvalidBudget, monthlyBudget)
	}

	today := models.DateOnly(asOf)
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := month.AddDate(0, 1, -1).Day()

	var spent float64
	for _, sp := range shifts {
		d := models.DateOnly(sp.Shift.Date)
		if d.Before(month) || d.After(today) {
			continue
		}
		spent += sp.Pay.TotalPay
	}

	status := models.BudgetStatus{
		Month:         month,
		Budget:        monthlyBudget,
		Spent:         spent,
		Remaining:     monthlyBudget - spent,
		DaysElapsed:   today.Day(),
		DaysInMonth:   daysInMonth,
		ProjectedCost: Project(spent, today.Day(), daysInMonth),
		Alert:         models.BudgetOK,
	}
	if monthlyBudget > 0 {
		status.PercentUsed = spent / monthlyBudget * 100
		status.Alert = alert(spent, status.ProjectedCost, monthlyBudget)
	}
	return status, nil
}

// Project extrapolates spend so far linearly to the end of the month.
func Project(spent float64, daysElapsed, daysInMonth int) float64 {
	if daysElapsed <= 0 {
		return 0
	}
	return spent / float64(daysElapsed) * float64(daysInMonth)
}

func alert(spent, projected, limit float64) models.BudgetAlert {
	switch {
	case spent > limit || projected > limit:
		return models.BudgetOver
	case spent >= limit*WatchRatio || projected >= limit*WatchRatio:
		return models.BudgetWatch
	default:
		return models.BudgetOK
	}
}
