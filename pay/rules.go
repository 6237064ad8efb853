package pay

import (
	"time"

	"noxshift/models"
)

// Thresholds used by the calculator.
const (
	// OvertimeThresholdHours is the weekly hours after which overtime applies.
	OvertimeThresholdHours = 40.0
	// OvertimeNoticeHours is the weekly hours after which a warning is informational.
	OvertimeNoticeHours = 35.0

	nightStartHour = 22
	nightEndHour   = 6
)

// Holiday is a recurring month/day holiday.
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
	// Floating marks holidays that really fall on the nth weekday of the
	// month. They are matched on a fixed day like the rest of the table.
	Floating bool
}

var differentials = [...]models.DifferentialRule{
	{Type: models.DifferentialNight, Multiplier: 1.15, Description: "Night shift (starts at or after 22:00 or ends by 06:00)", Color: "#6366f1"},
	{Type: models.DifferentialWeekend, Multiplier: 1.25, Description: "Weekend shift (Saturday or Sunday)", Color: "#8b5cf6"},
	{Type: models.DifferentialHoliday, Multiplier: 2.0, Description: "Holiday shift", Color: "#ef4444"},
	{Type: models.DifferentialOvertime, Multiplier: 1.5, Description: "Overtime (hours beyond 40 per week)", Color: "#f59e0b"},
	{Type: models.DifferentialHazard, Multiplier: 1.5, Description: "Hazard duty", Color: "#dc2626"},
	{Type: models.DifferentialOnCall, Multiplier: 1.2, Description: "On-call shift", Color: "#10b981"},
}

// TODO: compute Floating holidays from the shift's year instead of the fixed day.
var holidays = [...]Holiday{
	{Month: time.January, Day: 1, Name: "New Year's Day"},
	{Month: time.January, Day: 15, Name: "Martin Luther King Jr. Day", Floating: true},
	{Month: time.February, Day: 19, Name: "Presidents' Day", Floating: true},
	{Month: time.May, Day: 27, Name: "Memorial Day", Floating: true},
	{Month: time.July, Day: 4, Name: "Independence Day"},
	{Month: time.September, Day: 2, Name: "Labor Day", Floating: true},
	{Month: time.October, Day: 14, Name: "Columbus Day", Floating: true},
	{Month: time.November, Day: 11, Name: "Veterans Day"},
	{Month: time.November, Day: 28, Name: "Thanksgiving Day", Floating: true},
	{Month: time.December, Day: 25, Name: "Christmas Day"},
}

// Differentials returns a copy of the differential table in evaluation order.
func Differentials() []models.DifferentialRule {
	out := make([]models.DifferentialRule, len(differentials))
	copy(out, differentials[:])
	return out
}

// Holidays returns a copy of the holiday table.
func Holidays() []Holiday {
	out := make([]Holiday, len(holidays))
	copy(out, holidays[:])
	return out
}

// Rule looks up the rule for a differential type.
func Rule(t models.DifferentialType) (models.DifferentialRule, bool) {
	for _, r := range differentials {
		if r.Type == t {
			return r, true
		}
	}
	return models.DifferentialRule{}, false
}

// HolidayOn returns the holiday matching the date's month and day, ignoring the year.
func HolidayOn(date time.Time) (Holiday, bool) {
	for _, h := range holidays {
		if date.Month() == h.Month && date.Day() == h.Day {
			return h, true
		}
	}
	return Holiday{}, false
}

func isNight(start, end models.ClockTime) bool {
	return start.Hour() >= nightStartHour || end.Hour() <= nightEndHour
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
