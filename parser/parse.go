package parser

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"noxshift/errors"
	"noxshift/metrics"
	"noxshift/models"

	"golang.org/x/sync/errgroup"
)

const (
	minFields = 6
	maxFields = 7
)

// Parse reads a CSV roster from the reader and returns its shifts.
// Lines starting with '#' are headers/comments.
// Each record is: employee_id, employee_name, date, start, end, base_rate[, flags]
// where date is YYYY-MM-DD, start and end are 24-hour HH:MM, and flags is a
// ';'-separated list of timeoff, hazard and oncall.
func Parse(r io.Reader) ([]models.ShiftRecord, error) {
	return parse("", r)
}

// ParseFile opens and parses a single roster file.
func ParseFile(path string) ([]models.ShiftRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening roster: %w", err)
	}
	defer f.Close()
	return parse(path, f)
}

// ParseFiles parses several roster files concurrently and concatenates their
// shifts in argument order. The first failure cancels the rest.
func ParseFiles(ctx context.Context, paths []string) ([]models.ShiftRecord, error) {
	results := make([][]models.ShiftRecord, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			shifts, err := ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = shifts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.ShiftRecord
	for _, shifts := range results {
		all = append(all, shifts...)
	}
	return all, nil
}

func parse(source string, r io.Reader) ([]models.ShiftRecord, error) {
	started := time.Now()
	defer func() {
		metrics.ParserDurationSeconds.Observe(time.Since(started).Seconds())
	}()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var data []models.ShiftRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("csv").Inc()
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		shift, err := parseRecord(record)
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
			return nil, &errors.ParseError{
				Source: source,
				Line:   line,
				Record: record,
				Err:    err,
			}
		}
		data = append(data, shift)
	}

	metrics.ParserRecordsTotal.Add(float64(len(data)))
	return data, nil
}

func parseRecord(record []string) (models.ShiftRecord, error) {
	if len(record) < minFields || len(record) > maxFields {
		return models.ShiftRecord{}, errors.ErrInvalidFieldCount
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	s := models.ShiftRecord{
		EmployeeID:   record[0],
		EmployeeName: record[1],
	}
	if s.EmployeeID == "" || s.EmployeeName == "" {
		return s, errors.ErrEmptyField
	}

	date, err := time.Parse(models.DateLayout, record[2])
	if err != nil {
		return s, fmt.Errorf("%w: %v", errors.ErrInvalidDate, err)
	}
	s.Date = models.DateOnly(date)

	s.StartTime, err = models.ParseClock(record[3])
	if err != nil {
		return s, fmt.Errorf("%w: %v", errors.ErrInvalidStartTime, err)
	}
	s.EndTime, err = models.ParseClock(record[4])
	if err != nil {
		return s, fmt.Errorf("%w: %v", errors.ErrInvalidEndTime, err)
	}

	s.BaseRate, err = strconv.ParseFloat(record[5], 64)
	if err != nil {
		return s, fmt.Errorf("%w: %v", errors.ErrInvalidRate, err)
	}
	if s.BaseRate <= 0 {
		return s, fmt.Errorf("%w: must be positive, got %v", errors.ErrInvalidRate, s.BaseRate)
	}

	if len(record) == maxFields {
		if err := applyFlags(&s, record[6]); err != nil {
			return s, err
		}
	}
	return s, nil
}

func applyFlags(s *models.ShiftRecord, field string) error {
	for _, flag := range strings.Split(field, ";") {
		switch strings.ToLower(strings.TrimSpace(flag)) {
		case "":
		case "timeoff", "time-off":
			s.IsTimeOff = true
		case "hazard":
			s.IsHazard = true
		case "oncall", "on-call":
			s.IsOnCall = true
		default:
			return fmt.Errorf("%w: %q", errors.ErrInvalidFlag, flag)
		}
	}
	return nil
}

func errorType(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "field_count"
	case stderrors.Is(err, errors.ErrEmptyField):
		return "empty_field"
	case stderrors.Is(err, errors.ErrInvalidDate):
		return "date"
	case stderrors.Is(err, errors.ErrInvalidStartTime):
		return "start_time"
	case stderrors.Is(err, errors.ErrInvalidEndTime):
		return "end_time"
	case stderrors.Is(err, errors.ErrInvalidRate):
		return "rate"
	case stderrors.Is(err, errors.ErrInvalidFlag):
		return "flag"
	default:
		return "other"
	}
}
