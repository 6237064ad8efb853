package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"noxshift/metrics"
	"noxshift/models"
)

// AddShifts inserts shifts in a single transaction.
func (s *Store) AddShifts(ctx context.Context, shifts []models.ShiftRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shifts (employee_id, employee_name, date, start_time, end_time, base_rate, is_time_off, is_hazard, is_on_call)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, sh := range shifts {
		_, err := stmt.ExecContext(ctx,
			sh.EmployeeID,
			sh.EmployeeName,
			sh.Date.Format(models.DateLayout),
			sh.StartTime.String(),
			sh.EndTime.String(),
			sh.BaseRate,
			sh.IsTimeOff,
			sh.IsHazard,
			sh.IsOnCall,
		)
		if err != nil {
			return fmt.Errorf("insert shift of %s on %s: %w", sh.EmployeeID, sh.Date.Format(models.DateLayout), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	metrics.StoreShiftsWritten.Add(float64(len(shifts)))
	s.logger.Debug("Shifts stored", zap.Int("count", len(shifts)))
	return nil
}

// ListShifts returns the shifts dated between from and to inclusive, ordered
// by date, start time and insertion.
func (s *Store) ListShifts(ctx context.Context, from, to time.Time) ([]models.ShiftRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, employee_name, date, start_time, end_time, base_rate, is_time_off, is_hazard, is_on_call
		FROM shifts
		WHERE date BETWEEN ? AND ?
		ORDER BY date, start_time, id`,
		from.Format(models.DateLayout),
		to.Format(models.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []models.ShiftRecord
	for rows.Next() {
		var sh models.ShiftRecord
		var date, start, end string
		if err := rows.Scan(&sh.EmployeeID, &sh.EmployeeName, &date, &start, &end, &sh.BaseRate, &sh.IsTimeOff, &sh.IsHazard, &sh.IsOnCall); err != nil {
			return nil, err
		}
		d, err := time.Parse(models.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", date, err)
		}
		sh.Date = models.DateOnly(d)
		if sh.StartTime, err = models.ParseClock(start); err != nil {
			return nil, fmt.Errorf("stored start time: %w", err)
		}
		if sh.EndTime, err = models.ParseClock(end); err != nil {
			return nil, fmt.Errorf("stored end time: %w", err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("Shifts loaded",
		zap.String("from", from.Format(models.DateLayout)),
		zap.String("to", to.Format(models.DateLayout)),
		zap.Int("count", len(shifts)))
	return shifts, nil
}

// CountShifts returns the number of stored shifts.
func (s *Store) CountShifts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shifts`).Scan(&n)
	return n, err
}
