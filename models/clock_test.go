package models_test

import (
	"errors"
	"testing"
	"time"

	customerrors "noxshift/errors"
	"noxshift/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected models.ClockTime
		wantErr  bool
	}{
		"Morning":          {input: "09:00", expected: 540},
		"SingleDigitHour":  {input: "9:30", expected: 570},
		"LastMinute":       {input: "23:59", expected: 1439},
		"Midnight":         {input: "00:00", expected: 0},
		"Padded":           {input: " 22:15 ", expected: 1335},
		"HourOutOfRange":   {input: "24:00", wantErr: true},
		"MinuteOutOfRange": {input: "12:60", wantErr: true},
		"MissingColon":     {input: "1200", wantErr: true},
		"Letters":          {input: "ab:cd", wantErr: true},
		"ShortMinute":      {input: "12:5", wantErr: true},
		"Empty":            {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := models.ParseClock(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, customerrors.ErrInvalidTime))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "07:05", models.NewClockTime(7, 5).String())
	assert.Equal(t, 22, models.NewClockTime(22, 45).Hour())
	assert.Equal(t, 45, models.NewClockTime(22, 45).Minute())
}

func TestWeekStart(t *testing.T) {
	// 2024-01-07 is a Sunday
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, sunday, models.WeekStart(sunday))
	assert.Equal(t, sunday, models.WeekStart(time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, sunday, models.WeekStart(time.Date(2024, 1, 13, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, sunday.AddDate(0, 0, 7), models.WeekStart(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)))
}
