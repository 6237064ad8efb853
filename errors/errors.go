package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Source string
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s at line %d: %v (record: %v)", e.Source, e.Line, e.Err, e.Record)
	}
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Roster parsing errors
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrEmptyField        = fmt.Errorf("empty field")
	ErrInvalidDate       = fmt.Errorf("invalid date")
	ErrInvalidStartTime  = fmt.Errorf("invalid start time")
	ErrInvalidEndTime    = fmt.Errorf("invalid end time")
	ErrInvalidFlag       = fmt.Errorf("invalid flag")
)

// Calculation input errors
var (
	ErrInvalidTime        = fmt.Errorf("invalid clock time")
	ErrInvalidRate        = fmt.Errorf("invalid base rate")
	ErrInvalidWeeklyHours = fmt.Errorf("invalid weekly hours")
)

// Configuration errors
var (
	ErrInvalidBudget = fmt.Errorf("invalid monthly budget")
	ErrInvalidFormat = fmt.Errorf("invalid output format")
)
