package formatter_test

import (
	"strings"
	"testing"

	"noxshift/formatter"
	"noxshift/models"

	"github.com/stretchr/testify/assert"
)

func nightShiftPay() models.CalculatedPay {
	return models.CalculatedPay{
		BaseHours: 8, BaseRate: 20, BasePay: 160,
		Differentials: []models.AppliedDifferential{
			{Type: models.DifferentialNight, Hours: 8, EffectiveRate: 23, Amount: 24},
			{Type: models.DifferentialOnCall, Hours: 8, EffectiveRate: 24, Amount: 32},
		},
		TotalPay: 216,
	}
}

func TestFormatPayText(t *testing.T) {
	assert.Equal(t,
		"Base: 8.00h @ $20.00 = $160.00\n"+
			"Night (+15%): 8.00h @ $3.00 = $24.00\n"+
			"On-call (+20%): 8.00h @ $4.00 = $32.00\n"+
			"Total: $216.00\n",
		formatter.FormatPayText(nightShiftPay()))
}

func TestFormatPayJSON(t *testing.T) {
	output := formatter.FormatPayJSON(nightShiftPay())
	for _, s := range []string{`"base_pay": 160`, `"type": "oncall"`, `"effective_rate": 23`, `"total_pay": 216`} {
		assert.Contains(t, output, s)
	}
}

func TestFormatPayCSV(t *testing.T) {
	assert.Equal(t,
		"Component,Hours,Rate,Amount\n"+
			"base,8.00,20.00,160.00\n"+
			"night,8.00,23.00,24.00\n"+
			"oncall,8.00,24.00,32.00\n"+
			"total,,,216.00\n",
		formatter.FormatPayCSV(nightShiftPay()))
}

func TestFormatWarning(t *testing.T) {
	tests := map[string]struct {
		warning *models.OvertimeWarning
		text    string
		json    string
		csvRows int
	}{
		"None": {
			text:    "No overtime warning\n",
			json:    "null",
			csvRows: 1,
		},
		"High": {
			warning: &models.OvertimeWarning{
				Message:        "This shift results in 10.0 hours of overtime (50.0 hours projected this week)",
				Severity:       models.WarningHigh,
				ProjectedHours: 50,
				OvertimeHours:  10,
			},
			text:    "[HIGH] This shift results in 10.0 hours of overtime (50.0 hours projected this week)\n",
			json:    `"severity": "high"`,
			csvRows: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.text, formatter.FormatWarningText(tt.warning))
			assert.Contains(t, formatter.FormatWarningJSON(tt.warning), tt.json)

			csvOut := formatter.FormatWarningCSV(tt.warning)
			assert.Equal(t, tt.csvRows, len(strings.Split(strings.TrimSuffix(csvOut, "\n"), "\n")))
		})
	}
}
