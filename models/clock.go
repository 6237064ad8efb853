package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	customerrors "noxshift/errors"
)

// ParseClock parses a 24-hour HH:MM string. A single-digit hour is accepted.
func ParseClock(value string) (ClockTime, error) {
	value = strings.TrimSpace(value)
	hh, mm, ok := strings.Cut(value, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", customerrors.ErrInvalidTime, value)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", customerrors.ErrInvalidTime, value)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", customerrors.ErrInvalidTime, value)
	}
	return NewClockTime(hour, minute), nil
}

// WeekStart returns the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
