package attendance

import (
	"context"
	"time"
)

type Service struct {
	store PunchStore
}

func NewService(store PunchStore) *Service {
	return &Service{store: store}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *Service) PunchIn(ctx context.Context, personID string, now time.Time) error {
	ok, err := s.store.OpenPunch(ctx, personID, dayOf(now), now)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyPunchedIn
	}
	return nil
}

func (s *Service) PunchOut(ctx context.Context, personID string, now time.Time) error {
	ok, err := s.store.ClosePunch(ctx, personID, dayOf(now), now)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoOpenPunch
	}
	return nil
}

func (s *Service) History(ctx context.Context, personID string, from, to time.Time) ([]Punch, error) {
	return s.store.PunchesForPerson(ctx, personID, dayOf(from), dayOf(to))
}

func (s *Service) DailySheet(ctx context.Context, day time.Time) ([]Punch, error) {
	return s.store.PunchesForDay(ctx, dayOf(day))
}
