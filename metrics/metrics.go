// Package metrics provides Prometheus observability metrics for the pay and
// conflict engine. It includes Critical and Important metrics for business and
// operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"noxshift/models"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// PayTotal tracks total computed pay for the last processed roster.
var PayTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "payroll",
	Name:      "pay_total",
	Help:      "Total computed pay, base plus differentials, for the last roster",
})

// BasePayTotal tracks base pay for the last processed roster.
var BasePayTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "payroll",
	Name:      "base_pay_total",
	Help:      "Total base pay for the last roster",
})

// DifferentialPay tracks differential pay by differential type.
var DifferentialPay = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "payroll",
	Name:      "differential_pay",
	Help:      "Differential pay for the last roster broken down by differential type",
}, []string{"type"})

// OvertimeHours tracks overtime hours across all employees and weeks.
var OvertimeHours = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "payroll",
	Name:      "overtime_hours",
	Help:      "Overtime hours across all employees and weeks in the last roster",
})

// ConflictsBySeverity tracks detected conflicts by type and severity.
var ConflictsBySeverity = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "schedule",
	Name:      "conflicts",
	Help:      "Schedule conflicts found in the last roster by type and severity",
}, []string{"type", "severity"})

// BudgetPercentUsed tracks month-to-date spend as a percentage of budget.
var BudgetPercentUsed = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "payroll",
	Name:      "budget_percent_used",
	Help:      "Month-to-date pay as a percentage of the monthly budget",
})

// BudgetProjected tracks projected month-end spend.
var BudgetProjected = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "payroll",
	Name:      "budget_projected",
	Help:      "Linear projection of month-end pay",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total roster records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse a roster file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// EngineDurationSeconds tracks time to pay a roster and scan it for conflicts.
var EngineDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "engine",
	Name:      "duration_seconds",
	Help:      "Time taken to compute pay and conflicts for a roster",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// EngineShiftsProcessed tracks number of shifts per run.
var EngineShiftsProcessed = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "engine",
	Name:      "shifts_processed",
	Help:      "Number of shifts processed per run",
	Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 5000, 10000},
})

// StoreShiftsWritten tracks shifts imported into the roster store.
var StoreShiftsWritten = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "store",
	Name:      "shifts_written_total",
	Help:      "Total shifts written to the roster store",
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetReportGauges resets all per-roster gauges before a new run.
func ResetReportGauges() {
	PayTotal.Set(0)
	BasePayTotal.Set(0)
	OvertimeHours.Set(0)
	BudgetPercentUsed.Set(0)
	BudgetProjected.Set(0)
	DifferentialPay.Reset()
	ConflictsBySeverity.Reset()
}

// ObserveReport publishes the gauges for a finished report.
func ObserveReport(r *models.Report) {
	ResetReportGauges()
	EngineShiftsProcessed.Observe(float64(len(r.Shifts)))

	for _, sp := range r.Shifts {
		PayTotal.Add(sp.Pay.TotalPay)
		BasePayTotal.Add(sp.Pay.BasePay)
		for _, d := range sp.Pay.Differentials {
			DifferentialPay.WithLabelValues(string(d.Type)).Add(d.Amount)
		}
	}
	for _, w := range r.Weekly {
		OvertimeHours.Add(w.OvertimeHours)
	}
	ObserveConflicts(r.Conflicts)
	if r.Budget != nil {
		BudgetPercentUsed.Set(r.Budget.PercentUsed)
		BudgetProjected.Set(r.Budget.ProjectedCost)
	}
}

// ObserveConflicts replaces the conflict gauges with the given conflicts.
func ObserveConflicts(conflicts []models.Conflict) {
	ConflictsBySeverity.Reset()
	for _, c := range conflicts {
		ConflictsBySeverity.WithLabelValues(string(c.Type), string(c.Severity)).Inc()
	}
}
