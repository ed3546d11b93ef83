package people

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"internhr/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const personColumns = `
    id,
    kind,
    first_name,
    last_name,
    email,
    COALESCE(phone, ''),
    COALESCE(department, ''),
    COALESCE(designation, ''),
    joining_date,
    onboarded_at,
    status,
    created_at,
    updated_at`

func scanPerson(row pgx.Row) (Person, error) {
	var p Person
	err := row.Scan(
		&p.ID, &p.Kind, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.Department, &p.Designation, &p.JoiningDate, &p.OnboardedAt,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (s *Store) CreatePerson(ctx context.Context, p Person) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO persons (kind, first_name, last_name, email, phone, department, designation, joining_date, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id
  `, p.Kind, p.FirstName, p.LastName, p.Email, p.Phone, p.Department, p.Designation, p.JoiningDate, p.Status).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	return id, nil
}

func (s *Store) GetPerson(ctx context.Context, personID string) (Person, error) {
	p, err := scanPerson(s.DB.QueryRow(ctx, `
    SELECT`+personColumns+`
    FROM persons
    WHERE id = $1
  `, personID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Person{}, ErrNotFound
	}
	return p, err
}

func (s *Store) ListPeople(ctx context.Context, kind, status string, limit, offset int) ([]Person, error) {
	query := `
    SELECT` + personColumns + `
    FROM persons
    WHERE 1 = 1`
	args := []any{}
	if kind != "" {
		args = append(args, kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePerson(ctx context.Context, personID string, p Person) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE persons
    SET first_name = $1, last_name = $2, phone = $3, department = $4,
        designation = $5, joining_date = $6, updated_at = now()
    WHERE id = $7
  `, p.FirstName, p.LastName, p.Phone, p.Department, p.Designation, p.JoiningDate, personID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkOnboarded(ctx context.Context, personID string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE persons
    SET onboarded_at = $1, updated_at = now()
    WHERE id = $2 AND onboarded_at IS NULL
  `, at, personID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkSeparated(ctx context.Context, personID string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE persons
    SET status = $1, updated_at = $2
    WHERE id = $3 AND status <> $1
  `, StatusSeparated, at, personID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) EmailFor(ctx context.Context, personID string) (string, error) {
	var email string
	err := s.DB.QueryRow(ctx, `SELECT email FROM persons WHERE id = $1`, personID).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return email, err
}
