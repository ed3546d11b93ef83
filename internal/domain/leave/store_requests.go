package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) HasOverlap(ctx context.Context, personID string, from, to time.Time) (bool, error) {
	var overlap bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1
      FROM leave_requests
      WHERE person_id = $1
        AND status <> $2
        AND from_date <= $3
        AND to_date >= $4
    )
  `, personID, StatusRejected, to, from).Scan(&overlap)
	return overlap, err
}

func (s *Store) CreateRequest(ctx context.Context, r Request) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (person_id, leave_type, from_date, to_date, number_of_days, reason, status, rejection_reason)
    VALUES ($1,$2,$3,$4,$5,$6,$7,'')
    RETURNING id
  `, r.PersonID, r.LeaveType, r.FromDate, r.ToDate, r.NumberOfDays, r.Reason, r.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (Request, error) {
	var r Request
	err := s.DB.QueryRow(ctx, `
    SELECT id, person_id, leave_type, from_date, to_date, number_of_days, reason, status, rejection_reason, created_at, decided_at
    FROM leave_requests
    WHERE id = $1
  `, requestID).Scan(
		&r.ID, &r.PersonID, &r.LeaveType, &r.FromDate, &r.ToDate, &r.NumberOfDays,
		&r.Reason, &r.Status, &r.RejectionReason, &r.CreatedAt, &r.DecidedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return r, nil
}

func (s *Store) ListRequests(ctx context.Context, personID, status string, limit, offset int) ([]Request, error) {
	query := `
    SELECT id, person_id, leave_type, from_date, to_date, number_of_days, reason, status, rejection_reason, created_at, decided_at
    FROM leave_requests
    WHERE 1=1
  `
	args := []any{}
	if personID != "" {
		args = append(args, personID)
		query += fmt.Sprintf(" AND person_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(
			&r.ID, &r.PersonID, &r.LeaveType, &r.FromDate, &r.ToDate, &r.NumberOfDays,
			&r.Reason, &r.Status, &r.RejectionReason, &r.CreatedAt, &r.DecidedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *Store) RejectRequest(ctx context.Context, requestID, reason string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, rejection_reason = $2, decided_at = now()
    WHERE id = $3 AND status = $4
  `, StatusRejected, reason, requestID, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ApproveRequest performs the counter debit and the request state change in
// one transaction. The debit is conditioned on balance >= days at write
// time, so two concurrent approvals against the same counter can never drive
// the balance negative; the request update is conditioned on status =
// pending, so a request is accepted at most once.
func (s *Store) ApproveRequest(ctx context.Context, r Request, now time.Time) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("leave approval rollback failed", "requestId", r.ID, "err", rbErr)
		}
	}()

	// Resolve the counter whose cycle window contains today; approving
	// against a stale, already-rolled cycle is not allowed.
	day := DateOnly(now)
	var counterID string
	err = tx.QueryRow(ctx, `
    SELECT id
    FROM leave_counters
    WHERE person_id = $1
      AND lower(leave_type) = lower($2)
      AND cycle_start_date <= $3
      AND next_reset_date >= $3
  `, r.PersonID, r.LeaveType, day).Scan(&counterID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCounterNotFound
	}
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE leave_counters
    SET used = used + $1, balance = balance - $1
    WHERE id = $2 AND balance >= $1
  `, r.NumberOfDays, counterID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientBalance
	}

	tag, err = tx.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, rejection_reason = '', decided_at = now()
    WHERE id = $2 AND status = $3
  `, StatusAccepted, r.ID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyProcessed
	}

	return tx.Commit(ctx)
}
