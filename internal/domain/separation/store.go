package separation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"internhr/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) HasPending(ctx context.Context, personID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1 FROM separation_requests
      WHERE person_id = $1 AND status = $2
    )
  `, personID, StatusPending).Scan(&exists)
	return exists, err
}

func (s *Store) CreateRequest(ctx context.Context, r Request) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO separation_requests (person_id, kind, reason, last_working_date, status)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id
  `, r.PersonID, r.Kind, r.Reason, r.LastWorkingDate, r.Status).Scan(&id)
	return id, err
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (Request, error) {
	var r Request
	err := s.DB.QueryRow(ctx, `
    SELECT id, person_id, kind, reason, last_working_date, status,
           COALESCE(decision_note, ''), created_at, decided_at
    FROM separation_requests
    WHERE id = $1
  `, requestID).Scan(
		&r.ID, &r.PersonID, &r.Kind, &r.Reason, &r.LastWorkingDate,
		&r.Status, &r.DecisionNote, &r.CreatedAt, &r.DecidedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return r, err
}

func (s *Store) ListRequests(ctx context.Context, personID, status string, limit, offset int) ([]Request, error) {
	query := `
    SELECT id, person_id, kind, reason, last_working_date, status,
           COALESCE(decision_note, ''), created_at, decided_at
    FROM separation_requests
    WHERE 1 = 1`
	args := []any{}
	if personID != "" {
		args = append(args, personID)
		query += fmt.Sprintf(" AND person_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(
			&r.ID, &r.PersonID, &r.Kind, &r.Reason, &r.LastWorkingDate,
			&r.Status, &r.DecisionNote, &r.CreatedAt, &r.DecidedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) DecideRequest(ctx context.Context, requestID, status, note string, now time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE separation_requests
    SET status = $1, decision_note = $2, decided_at = $3
    WHERE id = $4 AND status = $5
  `, status, note, now, requestID, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
