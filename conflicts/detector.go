// Package conflicts scans a roster for double-bookings, weekly overtime and
// understaffed days.
package conflicts

import (
	"fmt"
	"sort"
	"time"

	"noxshift/models"
	"noxshift/pay"
)

// MinStaffPerDay is the minimum number of worked shifts expected on a scheduled date.
const MinStaffPerDay = 3

// DetectConflicts returns every conflict found in shifts. Errors come before
// warnings; within a severity, conflicts keep the order they were found in.
// The input is never modified and the same input always yields the same output.
func DetectConflicts(shifts []models.ShiftRecord) []models.Conflict {
	found := make([]models.Conflict, 0)
	found = append(found, doubleBookings(shifts)...)
	found = append(found, overtime(shifts)...)
	found = append(found, understaffing(shifts)...)

	sort.SliceStable(found, func(i, j int) bool {
		return rank(found[i].Severity) < rank(found[j].Severity)
	})
	return found
}

func rank(s models.ConflictSeverity) int {
	if s == models.SeverityError {
		return 0
	}
	return 1
}

// interval returns the shift as a half-open [start, end) range in minutes;
// overnight shifts extend past 1440.
func interval(s models.ShiftRecord) (int, int) {
	start, end := int(s.StartTime), int(s.EndTime)
	if end < start {
		end += 24 * 60
	}
	return start, end
}

func doubleBookings(shifts []models.ShiftRecord) []models.Conflict {
	var ids []string
	byEmployee := make(map[string][]models.ShiftRecord)
	for _, s := range shifts {
		if s.IsTimeOff {
			continue
		}
		if _, ok := byEmployee[s.EmployeeID]; !ok {
			ids = append(ids, s.EmployeeID)
		}
		byEmployee[s.EmployeeID] = append(byEmployee[s.EmployeeID], s)
	}

	var out []models.Conflict
	for _, id := range ids {
		group := byEmployee[id]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if !models.DateOnly(a.Date).Equal(models.DateOnly(b.Date)) {
					continue
				}
				s1, e1 := interval(a)
				s2, e2 := interval(b)
				if s1 < e2 && e1 > s2 {
					date := models.DateOnly(a.Date)
					out = append(out, models.Conflict{
						Type:     models.ConflictDoubleBooking,
						Severity: models.SeverityError,
						Message: fmt.Sprintf("%s is double-booked on %s: %s-%s overlaps %s-%s",
							a.EmployeeName, date.Format(models.DateLayout),
							a.StartTime, a.EndTime, b.StartTime, b.EndTime),
						EmployeeName: a.EmployeeName,
						Date:         &date,
					})
				}
			}
		}
	}
	return out
}

func overtime(shifts []models.ShiftRecord) []models.Conflict {
	var keys []models.WeekKey
	hours := make(map[models.WeekKey]float64)
	names := make(map[models.WeekKey]string)
	for _, s := range shifts {
		if s.IsTimeOff {
			continue
		}
		key := models.WeekKey{EmployeeID: s.EmployeeID, WeekStart: models.WeekStart(s.Date)}
		if _, ok := hours[key]; !ok {
			keys = append(keys, key)
			names[key] = s.EmployeeName
		}
		hours[key] += pay.CalculateShiftHours(s.StartTime, s.EndTime)
	}

	var out []models.Conflict
	for _, key := range keys {
		total := hours[key]
		if total <= pay.OvertimeThresholdHours {
			continue
		}
		week := key.WeekStart
		out = append(out, models.Conflict{
			Type:     models.ConflictOvertime,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%s is scheduled for %.1f hours in the week of %s (%.1f hours overtime)",
				names[key], total, week.Format(models.DateLayout), total-pay.OvertimeThresholdHours),
			EmployeeName: names[key],
			Date:         &week,
		})
	}
	return out
}

func understaffing(shifts []models.ShiftRecord) []models.Conflict {
	var dates []time.Time
	counts := make(map[time.Time]int)
	for _, s := range shifts {
		d := models.DateOnly(s.Date)
		if _, ok := counts[d]; !ok {
			dates = append(dates, d)
			counts[d] = 0
		}
		if !s.IsTimeOff {
			counts[d]++
		}
	}

	var out []models.Conflict
	for _, d := range dates {
		n := counts[d]
		if n >= MinStaffPerDay {
			continue
		}
		date := d
		out = append(out, models.Conflict{
			Type:     models.ConflictUnderstaffing,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Only %d staff scheduled on %s (minimum %d)",
				n, date.Format(models.DateLayout), MinStaffPerDay),
			Date: &date,
		})
	}
	return out
}
