package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakePunchStore struct {
	punches []*Punch
	nextID  int
}

func (f *fakePunchStore) openFor(personID string, day time.Time) *Punch {
	for _, p := range f.punches {
		if p.PersonID == personID && p.Day.Equal(day) && p.OutAt == nil {
			return p
		}
	}
	return nil
}

func (f *fakePunchStore) OpenPunch(ctx context.Context, personID string, day, inAt time.Time) (bool, error) {
	if f.openFor(personID, day) != nil {
		return false, nil
	}
	f.nextID++
	f.punches = append(f.punches, &Punch{
		ID: fmt.Sprintf("pun-%d", f.nextID), PersonID: personID,
		Day: day, InAt: inAt, CreatedAt: time.Now(),
	})
	return true, nil
}

func (f *fakePunchStore) ClosePunch(ctx context.Context, personID string, day, outAt time.Time) (bool, error) {
	p := f.openFor(personID, day)
	if p == nil || outAt.Before(p.InAt) {
		return false, nil
	}
	p.OutAt = &outAt
	return true, nil
}

func (f *fakePunchStore) PunchesForPerson(ctx context.Context, personID string, from, to time.Time) ([]Punch, error) {
	var out []Punch
	for _, p := range f.punches {
		if p.PersonID == personID && !p.Day.Before(from) && !p.Day.After(to) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePunchStore) PunchesForDay(ctx context.Context, day time.Time) ([]Punch, error) {
	var out []Punch
	for _, p := range f.punches {
		if p.Day.Equal(day) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func TestPunchInOncePerDay(t *testing.T) {
	store := &fakePunchStore{}
	svc := NewService(store)
	morning := time.Date(2025, 4, 7, 9, 2, 0, 0, time.UTC)

	if err := svc.PunchIn(context.Background(), "p1", morning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.PunchIn(context.Background(), "p1", morning.Add(time.Minute)); !errors.Is(err, ErrAlreadyPunchedIn) {
		t.Fatalf("expected ErrAlreadyPunchedIn, got %v", err)
	}
}

func TestPunchOutClosesAndReopens(t *testing.T) {
	store := &fakePunchStore{}
	svc := NewService(store)
	morning := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
	evening := morning.Add(8 * time.Hour)

	if err := svc.PunchOut(context.Background(), "p1", evening); !errors.Is(err, ErrNoOpenPunch) {
		t.Fatalf("expected ErrNoOpenPunch, got %v", err)
	}

	if err := svc.PunchIn(context.Background(), "p1", morning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.PunchOut(context.Background(), "p1", evening); err != nil {
		t.Fatalf("punch out failed: %v", err)
	}

	// A closed day allows a fresh punch, e.g. a split shift.
	if err := svc.PunchIn(context.Background(), "p1", evening.Add(time.Hour)); err != nil {
		t.Fatalf("second shift punch in failed: %v", err)
	}

	punches, err := svc.History(context.Background(), "p1", morning, evening)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(punches) != 2 {
		t.Fatalf("expected 2 punches, got %d", len(punches))
	}
}

func TestPunchMinutes(t *testing.T) {
	in := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
	out := in.Add(7*time.Hour + 31*time.Minute)
	p := Punch{InAt: in, OutAt: &out}
	if p.Minutes() != 451 {
		t.Fatalf("expected 451 minutes, got %d", p.Minutes())
	}
	if (Punch{InAt: in}).Minutes() != 0 {
		t.Fatal("open punch must report zero minutes")
	}
}
