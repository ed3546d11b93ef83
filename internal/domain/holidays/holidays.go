package holidays

import (
	"context"
	"errors"
	"strings"
	"time"

	"internhr/internal/platform/querier"
)

type Holiday struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Optional  bool      `json:"optional"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrNotFound     = errors.New("holiday not found")
	ErrNameRequired = errors.New("holiday name is required")
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, h Holiday) (Holiday, error) {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return Holiday{}, ErrNameRequired
	}
	h.Date = time.Date(h.Date.Year(), h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC)
	return s.store.Create(ctx, h)
}

func (s *Service) ListYear(ctx context.Context, year int) ([]Holiday, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.store.ListRange(ctx, from, from.AddDate(1, 0, -1))
}

func (s *Service) Delete(ctx context.Context, holidayID string) error {
	return s.store.Delete(ctx, holidayID)
}

func (s *Store) Create(ctx context.Context, h Holiday) (Holiday, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO holidays (name, holiday_date, optional)
    VALUES ($1, $2, $3)
    ON CONFLICT (holiday_date, name) DO UPDATE SET optional = EXCLUDED.optional
    RETURNING id, name, holiday_date, optional, created_at
  `, h.Name, h.Date, h.Optional).Scan(&h.ID, &h.Name, &h.Date, &h.Optional, &h.CreatedAt)
	return h, err
}

func (s *Store) ListRange(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, holiday_date, optional, created_at
    FROM holidays
    WHERE holiday_date BETWEEN $1 AND $2
    ORDER BY holiday_date
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Optional, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, holidayID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, holidayID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
