package attendance

import (
	"context"
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

func (s *Store) OpenPunch(ctx context.Context, personID string, day, inAt time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO attendance_punches (person_id, day, in_at)
    SELECT $1, $2, $3
    WHERE NOT EXISTS (
      SELECT 1 FROM attendance_punches
      WHERE person_id = $1 AND day = $2 AND out_at IS NULL
    )
  `, personID, day, inAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ClosePunch(ctx context.Context, personID string, day, outAt time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_punches
    SET out_at = $1
    WHERE person_id = $2 AND day = $3 AND out_at IS NULL AND in_at <= $1
  `, outAt, personID, day)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) PunchesForPerson(ctx context.Context, personID string, from, to time.Time) ([]Punch, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, person_id, day, in_at, out_at, created_at
    FROM attendance_punches
    WHERE person_id = $1 AND day BETWEEN $2 AND $3
    ORDER BY day DESC, in_at DESC
  `, personID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPunches(rows)
}

func (s *Store) PunchesForDay(ctx context.Context, day time.Time) ([]Punch, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, person_id, day, in_at, out_at, created_at
    FROM attendance_punches
    WHERE day = $1
    ORDER BY in_at
  `, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPunches(rows)
}

func scanPunches(rows pgx.Rows) ([]Punch, error) {
	var out []Punch
	for rows.Next() {
		var p Punch
		if err := rows.Scan(&p.ID, &p.PersonID, &p.Day, &p.InAt, &p.OutAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
