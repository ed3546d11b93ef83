package people

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// CounterInitializer opens the default leave counters for a person. Satisfied
// by the leave service.
type CounterInitializer interface {
	InitializeCounters(ctx context.Context, personID string, onboardingDate time.Time) (int, error)
}

type Service struct {
	store    PersonStore
	counters CounterInitializer
}

func NewService(store PersonStore, counters CounterInitializer) *Service {
	return &Service{store: store, counters: counters}
}

func (s *Service) Create(ctx context.Context, p Person) (Person, error) {
	p.Kind = strings.ToLower(strings.TrimSpace(p.Kind))
	if !KnownKind(p.Kind) {
		return Person{}, ErrUnknownKind
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Status = StatusActive

	id, err := s.store.CreatePerson(ctx, p)
	if err != nil {
		return Person{}, err
	}
	return s.store.GetPerson(ctx, id)
}

func (s *Service) Get(ctx context.Context, personID string) (Person, error) {
	return s.store.GetPerson(ctx, personID)
}

func (s *Service) List(ctx context.Context, kind, status string, limit, offset int) ([]Person, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListPeople(ctx, kind, status, limit, offset)
}

func (s *Service) Update(ctx context.Context, personID string, p Person) (Person, error) {
	ok, err := s.store.UpdatePerson(ctx, personID, p)
	if err != nil {
		return Person{}, err
	}
	if !ok {
		return Person{}, ErrNotFound
	}
	return s.store.GetPerson(ctx, personID)
}

// Onboard marks the person as onboarded and opens their default leave
// counters. Marking is conditional so a repeated call cannot onboard twice;
// counter creation itself is idempotent, so a crash between the two steps is
// repaired by calling Onboard again after clearing the flag, or simply by the
// counters already existing.
func (s *Service) Onboard(ctx context.Context, personID string, when time.Time) (Person, error) {
	if _, err := s.store.GetPerson(ctx, personID); err != nil {
		return Person{}, err
	}

	ok, err := s.store.MarkOnboarded(ctx, personID, when)
	if err != nil {
		return Person{}, err
	}
	if !ok {
		return Person{}, ErrAlreadyOnboarded
	}

	created, err := s.counters.InitializeCounters(ctx, personID, when)
	if err != nil {
		slog.Warn("onboarding counter init incomplete",
			"personId", personID,
			"created", created,
			"err", err)
	}
	return s.store.GetPerson(ctx, personID)
}
