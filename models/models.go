package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for input, keys and output.
const DateLayout = "2006-01-02"

// ClockTime is a local wall-clock time expressed as minutes since midnight.
type ClockTime int

// NewClockTime builds a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// Hour returns the hour component (0-23).
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component (0-59).
func (c ClockTime) Minute() int { return int(c) % 60 }

// String renders the time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// DateOnly strips the clock from t and returns the calendar day at UTC midnight.
// Every date that flows through the engine is normalized this way so it can
// be compared and used as a map key.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ShiftRecord is one scheduled shift as supplied by the roster source.
// It is shared across packages and never mutated by the engine.
type ShiftRecord struct {
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	StartTime    ClockTime
	EndTime      ClockTime
	BaseRate     float64
	IsTimeOff    bool
	IsHazard     bool
	IsOnCall     bool
}

// DifferentialType identifies a pay differential.
type DifferentialType string

const (
	DifferentialNight    DifferentialType = "night"
	DifferentialWeekend  DifferentialType = "weekend"
	DifferentialHoliday  DifferentialType = "holiday"
	DifferentialOvertime DifferentialType = "overtime"
	DifferentialHazard   DifferentialType = "hazard"
	DifferentialOnCall   DifferentialType = "oncall"
)

// DifferentialRule describes a differential and its multiplier.
type DifferentialRule struct {
	Type        DifferentialType `json:"type"`
	Multiplier  float64          `json:"multiplier"`
	Description string           `json:"description"`
	Color       string           `json:"color"`
}

// AppliedDifferential is a differential applied to some hours of a shift.
type AppliedDifferential struct {
	Type          DifferentialType `json:"type"`
	Hours         float64          `json:"hours"`
	EffectiveRate float64          `json:"effective_rate"`
	Amount        float64          `json:"amount"`
}

// CalculatedPay is the result of paying a single shift.
type CalculatedPay struct {
	BaseHours     float64               `json:"base_hours"`
	BaseRate      float64               `json:"base_rate"`
	BasePay       float64               `json:"base_pay"`
	Differentials []AppliedDifferential `json:"differentials"`
	TotalPay      float64               `json:"total_pay"`
	Breakdown     string                `json:"breakdown"`
}

// ConflictType classifies a schedule conflict.
type ConflictType string

const (
	ConflictDoubleBooking ConflictType = "double-booking"
	ConflictOvertime      ConflictType = "overtime"
	ConflictUnderstaffing ConflictType = "understaffing"
)

// ConflictSeverity is either error or warning.
type ConflictSeverity string

const (
	SeverityError   ConflictSeverity = "error"
	SeverityWarning ConflictSeverity = "warning"
)

// Conflict is a problem found in a roster.
type Conflict struct {
	Type         ConflictType     `json:"type"`
	Severity     ConflictSeverity `json:"severity"`
	Message      string           `json:"message"`
	EmployeeName string           `json:"employee_name,omitempty"`
	Date         *time.Time       `json:"date,omitempty"`
}

// WarningSeverity grades an overtime warning.
type WarningSeverity string

const (
	WarningLow    WarningSeverity = "low"
	WarningMedium WarningSeverity = "medium"
	WarningHigh   WarningSeverity = "high"
)

// OvertimeWarning is returned when a proposed shift approaches or exceeds
// the weekly overtime threshold.
type OvertimeWarning struct {
	Message        string          `json:"message"`
	Severity       WarningSeverity `json:"severity"`
	ProjectedHours float64         `json:"projected_hours"`
	OvertimeHours  float64         `json:"overtime_hours"`
}

// WeekKey identifies one employee's calendar week.
type WeekKey struct {
	EmployeeID string
	WeekStart  time.Time
}

// ShiftPay pairs a shift with its computed pay.
type ShiftPay struct {
	Shift             ShiftRecord
	WeeklyHoursBefore float64
	Pay               CalculatedPay
}

// WeeklyTotal aggregates one employee's pay for one week.
type WeeklyTotal struct {
	EmployeeID    string
	EmployeeName  string
	WeekStart     time.Time
	Hours         float64
	RegularHours  float64
	OvertimeHours float64
	TotalPay      float64
}

// BudgetAlert is the outcome of comparing spend to a monthly budget.
type BudgetAlert string

const (
	BudgetOK    BudgetAlert = "ok"
	BudgetWatch BudgetAlert = "watch"
	BudgetOver  BudgetAlert = "over"
)

// BudgetStatus summarizes month-to-date spend against a budget.
type BudgetStatus struct {
	Month         time.Time   `json:"month"`
	Budget        float64     `json:"budget"`
	Spent         float64     `json:"spent"`
	Remaining     float64     `json:"remaining"`
	PercentUsed   float64     `json:"percent_used"`
	DaysElapsed   int         `json:"days_elapsed"`
	DaysInMonth   int         `json:"days_in_month"`
	ProjectedCost float64     `json:"projected_cost"`
	Alert         BudgetAlert `json:"alert"`
}

// Report is everything produced by one run over a roster.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Shifts      []ShiftPay
	Weekly      []WeeklyTotal
	Conflicts   []Conflict
	Budget      *BudgetStatus
}
