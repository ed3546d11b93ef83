package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateCounter(ctx context.Context, c Counter) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO leave_counters (person_id, leave_type, total_allowed, used, balance, cycle_start_date, next_reset_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (person_id, leave_type) DO NOTHING
  `, c.PersonID, c.LeaveType, c.TotalAllowed, c.Used, c.Balance, c.CycleStartDate, c.NextResetDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CounterFor(ctx context.Context, personID, leaveType string) (Counter, error) {
	var c Counter
	err := s.DB.QueryRow(ctx, `
    SELECT id, person_id, leave_type, total_allowed, used, balance, cycle_start_date, next_reset_date, created_at
    FROM leave_counters
    WHERE person_id = $1 AND lower(leave_type) = lower($2)
  `, personID, leaveType).Scan(
		&c.ID, &c.PersonID, &c.LeaveType, &c.TotalAllowed, &c.Used, &c.Balance,
		&c.CycleStartDate, &c.NextResetDate, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Counter{}, ErrCounterNotFound
	}
	if err != nil {
		return Counter{}, err
	}
	return c, nil
}

func (s *Store) CountersForPerson(ctx context.Context, personID string) ([]Counter, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, person_id, leave_type, total_allowed, used, balance, cycle_start_date, next_reset_date, created_at
    FROM leave_counters
    WHERE person_id = $1
    ORDER BY leave_type
  `, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []Counter
	for rows.Next() {
		var c Counter
		if err := rows.Scan(
			&c.ID, &c.PersonID, &c.LeaveType, &c.TotalAllowed, &c.Used, &c.Balance,
			&c.CycleStartDate, &c.NextResetDate, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}

func (s *Store) ExpiredCounters(ctx context.Context, now time.Time) ([]Counter, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, person_id, leave_type, total_allowed, used, balance, cycle_start_date, next_reset_date, created_at
    FROM leave_counters
    WHERE next_reset_date <= $1
    ORDER BY next_reset_date
  `, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []Counter
	for rows.Next() {
		var c Counter
		if err := rows.Scan(
			&c.ID, &c.PersonID, &c.LeaveType, &c.TotalAllowed, &c.Used, &c.Balance,
			&c.CycleStartDate, &c.NextResetDate, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}

func (s *Store) ResetCounter(ctx context.Context, counterID string, now time.Time) (bool, error) {
	// The new cycle starts where the old one ended, truncated to midnight.
	// Conditioning on next_reset_date <= now makes repeat runs no-ops.
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_counters
    SET cycle_start_date = date_trunc('day', next_reset_date),
        next_reset_date  = date_trunc('day', next_reset_date) + interval '1 year',
        used             = 0,
        balance          = total_allowed
    WHERE id = $1 AND next_reset_date <= $2
  `, counterID, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
