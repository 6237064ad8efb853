package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"noxshift/models"
	"noxshift/pay"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// ReportData holds prepared report data used by all formatters
type ReportData struct {
	ID          string               `json:"id"`
	GeneratedAt string               `json:"generated_at"`
	Shifts      []ShiftRow           `json:"shifts"`
	Weekly      []WeeklyRow          `json:"weekly"`
	Conflicts   []ConflictRow        `json:"conflicts"`
	Budget      *models.BudgetStatus `json:"budget,omitempty"`
	TotalPay    float64              `json:"total_pay"`
}

// ShiftRow is one paid shift
type ShiftRow struct {
	EmployeeID        string               `json:"employee_id"`
	EmployeeName      string               `json:"employee_name"`
	Date              string               `json:"date"`
	Start             string               `json:"start"`
	End               string               `json:"end"`
	Flags             []string             `json:"flags,omitempty"`
	WeeklyHoursBefore float64              `json:"weekly_hours_before"`
	Pay               models.CalculatedPay `json:"pay"`
}

// WeeklyRow is one employee's week
type WeeklyRow struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	WeekStart     string  `json:"week_start"`
	Hours         float64 `json:"hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	TotalPay      float64 `json:"total_pay"`
}

// ConflictRow is a conflict with its date rendered
type ConflictRow struct {
	Type         models.ConflictType     `json:"type"`
	Severity     models.ConflictSeverity `json:"severity"`
	Message      string                  `json:"message"`
	EmployeeName string                  `json:"employee_name,omitempty"`
	Date         string                  `json:"date,omitempty"`
}

// prepareReportData flattens a report into rows for formatting
func prepareReportData(report *models.Report) *ReportData {
	data := &ReportData{
		ID:        report.ID,
		Shifts:    make([]ShiftRow, 0, len(report.Shifts)),
		Weekly:    make([]WeeklyRow, 0, len(report.Weekly)),
		Conflicts: prepareConflicts(report.Conflicts),
		Budget:    report.Budget,
	}
	if !report.GeneratedAt.IsZero() {
		data.GeneratedAt = report.GeneratedAt.UTC().Format(time.RFC3339)
	}

	for _, sp := range report.Shifts {
		data.Shifts = append(data.Shifts, ShiftRow{
			EmployeeID:        sp.Shift.EmployeeID,
			EmployeeName:      sp.Shift.EmployeeName,
			Date:              sp.Shift.Date.Format(models.DateLayout),
			Start:             sp.Shift.StartTime.String(),
			End:               sp.Shift.EndTime.String(),
			Flags:             flags(sp.Shift),
			WeeklyHoursBefore: sp.WeeklyHoursBefore,
			Pay:               sp.Pay,
		})
		data.TotalPay += sp.Pay.TotalPay
	}

	for _, w := range report.Weekly {
		data.Weekly = append(data.Weekly, WeeklyRow{
			EmployeeID:    w.EmployeeID,
			EmployeeName:  w.EmployeeName,
			WeekStart:     w.WeekStart.Format(models.DateLayout),
			Hours:         w.Hours,
			RegularHours:  w.RegularHours,
			OvertimeHours: w.OvertimeHours,
			TotalPay:      w.TotalPay,
		})
	}

	return data
}

func prepareConflicts(conflicts []models.Conflict) []ConflictRow {
	rows := make([]ConflictRow, 0, len(conflicts))
	for _, c := range conflicts {
		row := ConflictRow{
			Type:         c.Type,
			Severity:     c.Severity,
			Message:      c.Message,
			EmployeeName: c.EmployeeName,
		}
		if c.Date != nil {
			row.Date = c.Date.Format(models.DateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatText returns the text representation of the report.
// Empty sections are left out.
func FormatText(report *models.Report) string {
	data := prepareReportData(report)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("NoxShift report %s\n", data.ID))
	if data.GeneratedAt != "" {
		sb.WriteString(fmt.Sprintf("Generated: %s\n", data.GeneratedAt))
	}

	if len(data.Shifts) > 0 {
		sb.WriteString(fmt.Sprintf("\nShifts (%d):\n", len(data.Shifts)))
		for _, row := range data.Shifts {
			writeShiftText(&sb, row)
		}
	}

	if len(data.Weekly) > 0 {
		sb.WriteString(fmt.Sprintf("\nWeekly totals (%d):\n", len(data.Weekly)))
		for _, w := range data.Weekly {
			sb.WriteString(fmt.Sprintf("  Week of %s %s (%s): %.2fh (%.2f regular, %.2f overtime), %s\n",
				w.WeekStart, w.EmployeeName, w.EmployeeID, w.Hours, w.RegularHours, w.OvertimeHours, currency(w.TotalPay)))
		}
	}

	if len(data.Conflicts) > 0 {
		sb.WriteString(fmt.Sprintf("\nConflicts (%d):\n", len(data.Conflicts)))
		writeConflictsText(&sb, data.Conflicts)
	}

	if b := data.Budget; b != nil {
		sb.WriteString(fmt.Sprintf("\nBudget for %s:\n", b.Month.Format("2006-01")))
		sb.WriteString(fmt.Sprintf("  Spent:     %s of %s (%.1f%%)\n", currency(b.Spent), currency(b.Budget), b.PercentUsed))
		sb.WriteString(fmt.Sprintf("  Remaining: %s\n", currency(b.Remaining)))
		sb.WriteString(fmt.Sprintf("  Projected: %s (day %d of %d)\n", currency(b.ProjectedCost), b.DaysElapsed, b.DaysInMonth))
		sb.WriteString(fmt.Sprintf("  Alert:     %s\n", strings.ToUpper(string(b.Alert))))
	}

	sb.WriteString(fmt.Sprintf("\nTotal pay: %s\n", currency(data.TotalPay)))
	return sb.String()
}

// writeShiftText writes a shift line followed by one line per differential
func writeShiftText(sb *strings.Builder, row ShiftRow) {
	var tag string
	if len(row.Flags) > 0 {
		tag = fmt.Sprintf(" [%s]", strings.Join(row.Flags, ", "))
	}
	p := row.Pay
	sb.WriteString(fmt.Sprintf("  %s %s-%s %s (%s)%s: %.2fh @ %s, base %s, total %s\n",
		row.Date, row.Start, row.End, row.EmployeeName, row.EmployeeID, tag,
		p.BaseHours, currency(p.BaseRate), currency(p.BasePay), currency(p.TotalPay)))
	for _, d := range p.Differentials {
		sb.WriteString(fmt.Sprintf("    %s (+%.0f%%): %.2fh, +%s\n",
			pay.Label(d.Type), premium(p.BaseRate, d.EffectiveRate), d.Hours, currency(d.Amount)))
	}
}

func writeConflictsText(sb *strings.Builder, rows []ConflictRow) {
	for _, c := range rows {
		sb.WriteString(fmt.Sprintf("  [%s] %s: %s\n", strings.ToUpper(string(c.Severity)), c.Type, c.Message))
	}
}

// FormatJSON returns the JSON representation of the report
func FormatJSON(report *models.Report) string {
	data := prepareReportData(report)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the report, one row per shift
func FormatCSV(report *models.Report) string {
	data := prepareReportData(report)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{
		"Date", "Employee ID", "Employee", "Start", "End", "Flags",
		"Hours", "Base Rate", "Base Pay", "Differentials", "Total Pay",
	})

	for _, row := range data.Shifts {
		writeShiftToCSV(writer, row)
	}

	writer.Flush()
	return sb.String()
}

// writeShiftToCSV writes a single shift's data to CSV
func writeShiftToCSV(writer *csv.Writer, row ShiftRow) {
	// Differentials as "night=24.00; weekend=40.00"
	parts := make([]string, 0, len(row.Pay.Differentials))
	for _, d := range row.Pay.Differentials {
		parts = append(parts, fmt.Sprintf("%s=%.2f", d.Type, d.Amount))
	}

	writer.Write([]string{
		row.Date,
		row.EmployeeID,
		row.EmployeeName,
		row.Start,
		row.End,
		strings.Join(row.Flags, ";"),
		fmt.Sprintf("%.2f", row.Pay.BaseHours),
		fmt.Sprintf("%.2f", row.Pay.BaseRate),
		fmt.Sprintf("%.2f", row.Pay.BasePay),
		strings.Join(parts, "; "),
		fmt.Sprintf("%.2f", row.Pay.TotalPay),
	})
}

// FormatConflictsText lists conflicts, or says there are none
func FormatConflictsText(conflicts []models.Conflict) string {
	if len(conflicts) == 0 {
		return "No conflicts found\n"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Conflicts (%d):\n", len(conflicts)))
	writeConflictsText(&sb, prepareConflicts(conflicts))
	return sb.String()
}

// FormatConflictsJSON returns conflicts as a JSON array
func FormatConflictsJSON(conflicts []models.Conflict) string {
	jsonBytes, _ := json.MarshalIndent(prepareConflicts(conflicts), "", "  ")
	return string(jsonBytes)
}

// FormatConflictsCSV returns conflicts as CSV, one row per conflict
func FormatConflictsCSV(conflicts []models.Conflict) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	writer.Write([]string{"Severity", "Type", "Date", "Employee", "Message"})
	for _, c := range prepareConflicts(conflicts) {
		writer.Write([]string{string(c.Severity), string(c.Type), c.Date, c.EmployeeName, c.Message})
	}
	writer.Flush()
	return sb.String()
}

// flags lists the opt-in markers of a shift
func flags(s models.ShiftRecord) []string {
	var out []string
	if s.IsTimeOff {
		out = append(out, "timeoff")
	}
	if s.IsHazard {
		out = append(out, "hazard")
	}
	if s.IsOnCall {
		out = append(out, "oncall")
	}
	return out
}

// premium is the percentage a differential adds on top of the base rate
func premium(baseRate, effectiveRate float64) float64 {
	if baseRate == 0 {
		return 0
	}
	return (effectiveRate/baseRate - 1) * 100
}

// currency renders dollars with grouped thousands, e.g. $1,234.50
func currency(v float64) string {
	if v < 0 {
		return "-" + printer.Sprintf("$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}
