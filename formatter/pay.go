package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"noxshift/models"
	"noxshift/pay"
)

// FormatPayText renders a single shift calculation, one component per line
func FormatPayText(p models.CalculatedPay) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base: %.2fh @ %s = %s\n", p.BaseHours, currency(p.BaseRate), currency(p.BasePay)))
	for _, d := range p.Differentials {
		sb.WriteString(fmt.Sprintf("%s (+%.0f%%): %.2fh @ %s = %s\n",
			pay.Label(d.Type), premium(p.BaseRate, d.EffectiveRate), d.Hours,
			currency(d.EffectiveRate-p.BaseRate), currency(d.Amount)))
	}
	sb.WriteString(fmt.Sprintf("Total: %s\n", currency(p.TotalPay)))
	return sb.String()
}

// FormatPayJSON returns the calculation as JSON
func FormatPayJSON(p models.CalculatedPay) string {
	jsonBytes, _ := json.MarshalIndent(p, "", "  ")
	return string(jsonBytes)
}

// FormatPayCSV returns one row for base pay, one per differential and a total
func FormatPayCSV(p models.CalculatedPay) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Component", "Hours", "Rate", "Amount"})
	writer.Write([]string{
		"base",
		fmt.Sprintf("%.2f", p.BaseHours),
		fmt.Sprintf("%.2f", p.BaseRate),
		fmt.Sprintf("%.2f", p.BasePay),
	})
	for _, d := range p.Differentials {
		writer.Write([]string{
			string(d.Type),
			fmt.Sprintf("%.2f", d.Hours),
			fmt.Sprintf("%.2f", d.EffectiveRate),
			fmt.Sprintf("%.2f", d.Amount),
		})
	}
	writer.Write([]string{"total", "", "", fmt.Sprintf("%.2f", p.TotalPay)})

	writer.Flush()
	return sb.String()
}

// FormatWarningText renders an overtime warning. A nil warning means the
// week stays clear of the notice threshold.
func FormatWarningText(w *models.OvertimeWarning) string {
	if w == nil {
		return "No overtime warning\n"
	}
	return fmt.Sprintf("[%s] %s\n", strings.ToUpper(string(w.Severity)), w.Message)
}

// FormatWarningJSON returns the warning as JSON, or null
func FormatWarningJSON(w *models.OvertimeWarning) string {
	jsonBytes, _ := json.MarshalIndent(w, "", "  ")
	return string(jsonBytes)
}

// FormatWarningCSV returns a header and, when present, the warning row
func FormatWarningCSV(w *models.OvertimeWarning) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	writer.Write([]string{"Severity", "Projected Hours", "Overtime Hours", "Message"})
	if w != nil {
		writer.Write([]string{
			string(w.Severity),
			fmt.Sprintf("%.2f", w.ProjectedHours),
			fmt.Sprintf("%.2f", w.OvertimeHours),
			w.Message,
		})
	}
	writer.Flush()
	return sb.String()
}
