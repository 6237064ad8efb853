package conflicts_test

import (
	"fmt"
	"testing"
	"time"

	"noxshift/conflicts"
	"noxshift/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func at(h, m int) models.ClockTime { return models.NewClockTime(h, m) }

func rec(id string, date time.Time, start, end models.ClockTime) models.ShiftRecord {
	return models.ShiftRecord{
		EmployeeID:   id,
		EmployeeName: "Employee " + id,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		BaseRate:     20,
	}
}

// staffed adds three unrelated shifts on each date so understaffing stays quiet.
func staffed(dates ...time.Time) []models.ShiftRecord {
	var out []models.ShiftRecord
	for _, d := range dates {
		for i := 0; i < 3; i++ {
			out = append(out, rec(fmt.Sprintf("filler-%d", i), d, at(9, 0), at(12, 0)))
		}
	}
	return out
}

func ofType(cs []models.Conflict, t models.ConflictType) []models.Conflict {
	var out []models.Conflict
	for _, c := range cs {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func TestDetectConflicts_DoubleBooking(t *testing.T) {
	tests := map[string]struct {
		shifts   []models.ShiftRecord
		expected int
	}{
		"Overlapping": {
			shifts:   []models.ShiftRecord{rec("a", day(9), at(9, 0), at(13, 0)), rec("a", day(9), at(12, 0), at(16, 0))},
			expected: 1,
		},
		"BackToBack": {
			shifts:   []models.ShiftRecord{rec("a", day(9), at(9, 0), at(13, 0)), rec("a", day(9), at(13, 0), at(17, 0))},
			expected: 0,
		},
		"DifferentDates": {
			shifts:   []models.ShiftRecord{rec("a", day(9), at(9, 0), at(13, 0)), rec("a", day(10), at(9, 0), at(13, 0))},
			expected: 0,
		},
		"DifferentEmployees": {
			shifts:   []models.ShiftRecord{rec("a", day(9), at(9, 0), at(13, 0)), rec("b", day(9), at(9, 0), at(13, 0))},
			expected: 0,
		},
		"Contained": {
			shifts:   []models.ShiftRecord{rec("a", day(9), at(8, 0), at(18, 0)), rec("a", day(9), at(10, 0), at(11, 0))},
			expected: 1,
		},
		"Overnight": {
			shifts:   []models.ShiftRecord{rec("a", day(9), at(22, 0), at(6, 0)), rec("a", day(9), at(23, 0), at(2, 0))},
			expected: 1,
		},
		"EveryOverlappingPair": {
			shifts: []models.ShiftRecord{
				rec("a", day(9), at(9, 0), at(12, 0)),
				rec("a", day(9), at(10, 0), at(13, 0)),
				rec("a", day(9), at(11, 0), at(14, 0)),
			},
			expected: 3,
		},
		"TimeOffIgnored": {
			shifts: func() []models.ShiftRecord {
				off := rec("a", day(9), at(9, 0), at(17, 0))
				off.IsTimeOff = true
				return []models.ShiftRecord{off, rec("a", day(9), at(12, 0), at(16, 0))}
			}(),
			expected: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ofType(conflicts.DetectConflicts(tt.shifts), models.ConflictDoubleBooking)
			require.Len(t, got, tt.expected)
			for _, c := range got {
				assert.Equal(t, models.SeverityError, c.Severity)
				assert.Equal(t, "Employee a", c.EmployeeName)
				require.NotNil(t, c.Date)
				assert.Equal(t, day(9), *c.Date)
			}
		})
	}
}

func TestDetectConflicts_DoubleBookingMessage(t *testing.T) {
	got := ofType(conflicts.DetectConflicts([]models.ShiftRecord{
		rec("a", day(9), at(9, 0), at(13, 0)),
		rec("a", day(9), at(12, 0), at(16, 0)),
	}), models.ConflictDoubleBooking)

	require.Len(t, got, 1)
	assert.Equal(t, "Employee a is double-booked on 2024-01-09: 09:00-13:00 overlaps 12:00-16:00", got[0].Message)
}

func TestDetectConflicts_Overtime(t *testing.T) {
	// Week of Sunday 2024-01-07. Each employee works 5h every day plus a
	// second 5h block on Monday: 8 shifts, 40 hours.
	var roster []models.ShiftRecord
	for e := 1; e <= 5; e++ {
		id := fmt.Sprintf("e%d", e)
		for d := 7; d <= 13; d++ {
			roster = append(roster, rec(id, day(d), at(8, 0), at(13, 0)))
		}
		roster = append(roster, rec(id, day(8), at(14, 0), at(19, 0)))
	}

	assert.Empty(t, conflicts.DetectConflicts(roster))

	roster = append(roster, rec("e3", day(9), at(14, 0), at(18, 0)))
	got := conflicts.DetectConflicts(roster)
	require.Len(t, got, 1)
	assert.Equal(t, models.ConflictOvertime, got[0].Type)
	assert.Equal(t, models.SeverityWarning, got[0].Severity)
	assert.Equal(t, "Employee e3", got[0].EmployeeName)
	assert.Equal(t, day(7), *got[0].Date)
	assert.Contains(t, got[0].Message, "44.0 hours")
	assert.Contains(t, got[0].Message, "4.0 hours overtime")
}

func TestDetectConflicts_OvertimeSplitsWeeksOnSunday(t *testing.T) {
	// 12h shifts Thursday 11 to Wednesday 17: 36h in the first week, 48h in the next.
	var roster []models.ShiftRecord
	for d := 11; d <= 17; d++ {
		roster = append(roster, rec("a", day(d), at(8, 0), at(20, 0)))
	}
	roster = append(roster, staffed(day(11), day(12), day(13), day(14), day(15), day(16), day(17))...)

	got := ofType(conflicts.DetectConflicts(roster), models.ConflictOvertime)
	require.Len(t, got, 1)
	assert.Equal(t, day(14), *got[0].Date)
	assert.Contains(t, got[0].Message, "8.0 hours overtime")
}

func TestDetectConflicts_OvernightHoursWrap(t *testing.T) {
	// Five 9h overnight shifts: 45h.
	var roster []models.ShiftRecord
	for d := 8; d <= 12; d++ {
		roster = append(roster, rec("a", day(d), at(21, 0), at(6, 0)))
	}
	roster = append(roster, staffed(day(8), day(9), day(10), day(11), day(12))...)

	got := ofType(conflicts.DetectConflicts(roster), models.ConflictOvertime)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "5.0 hours overtime")
}

func TestDetectConflicts_Understaffing(t *testing.T) {
	off := rec("c", day(10), at(9, 0), at(17, 0))
	off.IsTimeOff = true

	roster := []models.ShiftRecord{
		rec("a", day(9), at(9, 0), at(17, 0)),
		rec("b", day(9), at(9, 0), at(17, 0)),
		rec("c", day(9), at(9, 0), at(17, 0)),
		rec("a", day(10), at(9, 0), at(17, 0)),
		rec("b", day(10), at(9, 0), at(17, 0)),
		off,
	}

	got := conflicts.DetectConflicts(roster)
	require.Len(t, got, 1)
	assert.Equal(t, models.ConflictUnderstaffing, got[0].Type)
	assert.Equal(t, models.SeverityWarning, got[0].Severity)
	assert.Equal(t, day(10), *got[0].Date)
	assert.Empty(t, got[0].EmployeeName)
	assert.Equal(t, "Only 2 staff scheduled on 2024-01-10 (minimum 3)", got[0].Message)
}

func TestDetectConflicts_UnderstaffingTimeOffOnly(t *testing.T) {
	roster := []models.ShiftRecord{
		rec("a", day(9), at(9, 0), at(17, 0)),
		rec("b", day(9), at(9, 0), at(17, 0)),
		rec("c", day(9), at(9, 0), at(17, 0)),
	}
	for _, id := range []string{"a", "b"} {
		off := rec(id, day(10), at(9, 0), at(17, 0))
		off.IsTimeOff = true
		roster = append(roster, off)
	}

	got := conflicts.DetectConflicts(roster)
	require.Len(t, got, 1)
	assert.Equal(t, models.ConflictUnderstaffing, got[0].Type)
	assert.Equal(t, day(10), *got[0].Date)
	assert.Equal(t, "Only 0 staff scheduled on 2024-01-10 (minimum 3)", got[0].Message)
}

func TestDetectConflicts_ErrorsBeforeWarnings(t *testing.T) {
	roster := []models.ShiftRecord{
		rec("a", day(8), at(9, 0), at(17, 0)),
		rec("b", day(9), at(9, 0), at(17, 0)),
		rec("b", day(9), at(10, 0), at(11, 0)),
	}

	got := conflicts.DetectConflicts(roster)
	require.Len(t, got, 3)
	assert.Equal(t, models.ConflictDoubleBooking, got[0].Type)
	// Warnings keep insertion order: the 8th is found before the 9th.
	assert.Equal(t, models.ConflictUnderstaffing, got[1].Type)
	assert.Equal(t, day(8), *got[1].Date)
	assert.Equal(t, day(9), *got[2].Date)
}

func TestDetectConflicts_Idempotent(t *testing.T) {
	roster := []models.ShiftRecord{
		rec("a", day(9), at(9, 0), at(13, 0)),
		rec("a", day(9), at(12, 0), at(16, 0)),
		rec("b", day(10), at(22, 0), at(6, 0)),
		rec("b", day(10), at(23, 0), at(1, 0)),
		rec("c", day(11), at(6, 0), at(18, 0)),
	}
	original := append([]models.ShiftRecord(nil), roster...)

	first := conflicts.DetectConflicts(roster)
	second := conflicts.DetectConflicts(roster)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("DetectConflicts() not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(original, roster); diff != "" {
		t.Errorf("DetectConflicts() mutated input (-want +got):\n%s", diff)
	}
}

func TestDetectConflicts_Empty(t *testing.T) {
	got := conflicts.DetectConflicts(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
