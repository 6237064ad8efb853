// Package pay computes shift pay with stacked differentials and weekly overtime.
// Every function here is pure: no I/O, no shared mutable state.
package pay

import (
	"fmt"
	"math"
	"strings"
	"time"

	customerrors "noxshift/errors"
	"noxshift/models"
)

// Options carries the opt-in differential flags of a shift.
type Options struct {
	IsHazard bool
	IsOnCall bool
}

// OptionsFor extracts the calculator options of a shift record.
func OptionsFor(s models.ShiftRecord) Options {
	return Options{IsHazard: s.IsHazard, IsOnCall: s.IsOnCall}
}

// CalculateShiftHours returns the worked hours between start and end.
// An end before the start wraps past midnight; shifts never exceed 24 hours.
func CalculateShiftHours(start, end models.ClockTime) float64 {
	minutes := int(end) - int(start)
	if minutes < 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60
}

// OvertimeHours returns how many of shiftHours fall past the weekly threshold,
// given the hours already worked this week.
func OvertimeHours(weeklyHoursSoFar, shiftHours float64) float64 {
	over := math.Min(shiftHours, weeklyHoursSoFar+shiftHours-OvertimeThresholdHours)
	return math.Max(0, over)
}

// CalculatePay parses HH:MM start and end times and pays the shift.
func CalculatePay(date time.Time, startTime, endTime string, baseRate, weeklyHoursSoFar float64, opts Options) (models.CalculatedPay, error) {
	start, err := models.ParseClock(startTime)
	if err != nil {
		return models.CalculatedPay{}, fmt.Errorf("start: %w", err)
	}
	end, err := models.ParseClock(endTime)
	if err != nil {
		return models.CalculatedPay{}, fmt.Errorf("end: %w", err)
	}
	return CalculateShiftPay(date, start, end, baseRate, weeklyHoursSoFar, opts)
}

// CalculateShiftPay pays a shift whose times are already parsed.
//
// Base pay is hours × baseRate. Each applicable differential adds
// hours × baseRate × (multiplier − 1); differentials stack additively against
// the same base rate and never compound. Overtime only covers the part of the
// shift past 40 weekly hours, every other differential covers the whole shift.
func CalculateShiftPay(date time.Time, start, end models.ClockTime, baseRate, weeklyHoursSoFar float64, opts Options) (models.CalculatedPay, error) {
	if math.IsNaN(baseRate) || math.IsInf(baseRate, 0) || baseRate <= 0 {
		return models.CalculatedPay{}, fmt.Errorf("%w: %v", customerrors.ErrInvalidRate, baseRate)
	}
	if math.IsNaN(weeklyHoursSoFar) || weeklyHoursSoFar < 0 {
		return models.CalculatedPay{}, fmt.Errorf("%w: %v", customerrors.ErrInvalidWeeklyHours, weeklyHoursSoFar)
	}

	hours := CalculateShiftHours(start, end)
	result := models.CalculatedPay{
		BaseHours:     hours,
		BaseRate:      baseRate,
		BasePay:       roundCents(hours * baseRate),
		Differentials: make([]models.AppliedDifferential, 0),
	}

	total := result.BasePay
	for _, rule := range GetApplicableDifferentials(date, start, end, weeklyHoursSoFar, opts) {
		h := hours
		if rule.Type == models.DifferentialOvertime {
			h = OvertimeHours(weeklyHoursSoFar, hours)
		}
		applied := models.AppliedDifferential{
			Type:          rule.Type,
			Hours:         h,
			EffectiveRate: baseRate * rule.Multiplier,
			Amount:        roundCents(h * baseRate * (rule.Multiplier - 1)),
		}
		result.Differentials = append(result.Differentials, applied)
		total += applied.Amount
	}
	result.TotalPay = total
	result.Breakdown = breakdown(result)
	return result, nil
}

// GetApplicableDifferentials returns the rules that apply to a shift, in table
// order, without computing any amounts.
func GetApplicableDifferentials(date time.Time, start, end models.ClockTime, weeklyHoursSoFar float64, opts Options) []models.DifferentialRule {
	hours := CalculateShiftHours(start, end)
	applicable := make([]models.DifferentialRule, 0, len(differentials))
	for _, rule := range differentials {
		var ok bool
		switch rule.Type {
		case models.DifferentialNight:
			ok = isNight(start, end)
		case models.DifferentialWeekend:
			ok = isWeekend(date)
		case models.DifferentialHoliday:
			_, ok = HolidayOn(date)
		case models.DifferentialOvertime:
			ok = OvertimeHours(weeklyHoursSoFar, hours) > 0
		case models.DifferentialHazard:
			ok = opts.IsHazard
		case models.DifferentialOnCall:
			ok = opts.IsOnCall
		}
		if ok {
			applicable = append(applicable, rule)
		}
	}
	return applicable
}

// CheckOvertimeWarning reports whether adding a proposed shift would bring
// the week past the notice threshold (35h) or into overtime (40h).
// It returns nil when the projected week stays at or below 35 hours.
func CheckOvertimeWarning(weeklyHours, proposedShiftHours float64) *models.OvertimeWarning {
	projected := weeklyHours + proposedShiftHours
	switch {
	case projected > OvertimeThresholdHours:
		over := projected - OvertimeThresholdHours
		severity := models.WarningLow
		if over > 8 {
			severity = models.WarningHigh
		} else if over > 4 {
			severity = models.WarningMedium
		}
		return &models.OvertimeWarning{
			Message:        fmt.Sprintf("This shift results in %.1f hours of overtime (%.1f hours projected this week)", over, projected),
			Severity:       severity,
			ProjectedHours: projected,
			OvertimeHours:  over,
		}
	case projected > OvertimeNoticeHours:
		return &models.OvertimeWarning{
			Message:        fmt.Sprintf("Approaching overtime: %.1f hours projected this week", projected),
			Severity:       models.WarningLow,
			ProjectedHours: projected,
		}
	}
	return nil
}

func breakdown(p models.CalculatedPay) string {
	parts := []string{fmt.Sprintf("Base: %.2fh @ $%.2f = $%.2f", p.BaseHours, p.BaseRate, p.BasePay)}
	for _, d := range p.Differentials {
		rule, _ := Rule(d.Type)
		parts = append(parts, fmt.Sprintf("%s (+%.0f%%): %.2fh @ $%.2f = $%.2f",
			Label(d.Type), (rule.Multiplier-1)*100, d.Hours, d.EffectiveRate-p.BaseRate, d.Amount))
	}
	parts = append(parts, fmt.Sprintf("Total: $%.2f", p.TotalPay))
	return strings.Join(parts, " | ")
}

// Label returns the display name of a differential type.
func Label(t models.DifferentialType) string {
	switch t {
	case models.DifferentialOnCall:
		return "On-call"
	default:
		s := string(t)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
