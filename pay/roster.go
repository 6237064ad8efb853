package pay

import (
	"fmt"
	"sort"

	"noxshift/models"
)

// RosterPay is the result of paying every worked shift in a roster.
type RosterPay struct {
	// Shifts holds one entry per non-time-off shift, in input order.
	Shifts []models.ShiftPay
	// Weekly holds one entry per employee and week, ordered by week start
	// and then by first appearance.
	Weekly []models.WeeklyTotal
	// TotalPay is the sum of every shift's total pay.
	TotalPay float64
}

// CalculateRoster pays each worked shift of a roster. Shifts are visited per
// employee in chronological order (date, then start time) so each one is paid
// with the hours that employee already worked earlier in the same week.
// Time-off entries are skipped.
func CalculateRoster(shifts []models.ShiftRecord) (RosterPay, error) {
	order := make([]int, 0, len(shifts))
	for i, s := range shifts {
		if !s.IsTimeOff {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := shifts[order[a]], shifts[order[b]]
		da, db := models.DateOnly(sa.Date), models.DateOnly(sb.Date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		return sa.StartTime < sb.StartTime
	})

	paid := make(map[int]models.ShiftPay, len(order))
	hoursSoFar := make(map[models.WeekKey]float64)
	totals := make(map[models.WeekKey]*models.WeeklyTotal)
	var keys []models.WeekKey

	for _, idx := range order {
		s := shifts[idx]
		key := models.WeekKey{EmployeeID: s.EmployeeID, WeekStart: models.WeekStart(s.Date)}
		before := hoursSoFar[key]

		calc, err := CalculateShiftPay(s.Date, s.StartTime, s.EndTime, s.BaseRate, before, OptionsFor(s))
		if err != nil {
			return RosterPay{}, fmt.Errorf("shift of %s on %s: %w", s.EmployeeName, s.Date.Format(models.DateLayout), err)
		}
		paid[idx] = models.ShiftPay{Shift: s, WeeklyHoursBefore: before, Pay: calc}
		hoursSoFar[key] = before + calc.BaseHours

		wt, ok := totals[key]
		if !ok {
			wt = &models.WeeklyTotal{EmployeeID: s.EmployeeID, EmployeeName: s.EmployeeName, WeekStart: key.WeekStart}
			totals[key] = wt
			keys = append(keys, key)
		}
		wt.Hours += calc.BaseHours
		wt.OvertimeHours += OvertimeHours(before, calc.BaseHours)
		wt.TotalPay += calc.TotalPay
	}

	result := RosterPay{
		Shifts: make([]models.ShiftPay, 0, len(order)),
		Weekly: make([]models.WeeklyTotal, 0, len(keys)),
	}
	for i := range shifts {
		if sp, ok := paid[i]; ok {
			result.Shifts = append(result.Shifts, sp)
			result.TotalPay += sp.Pay.TotalPay
		}
	}
	sort.SliceStable(keys, func(a, b int) bool {
		return keys[a].WeekStart.Before(keys[b].WeekStart)
	})
	for _, k := range keys {
		wt := totals[k]
		wt.RegularHours = wt.Hours - wt.OvertimeHours
		result.Weekly = append(result.Weekly, *wt)
	}
	return result, nil
}
