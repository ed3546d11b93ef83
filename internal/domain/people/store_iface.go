package people

import (
	"context"
	"time"
)

type PersonStore interface {
	CreatePerson(ctx context.Context, p Person) (string, error)
	GetPerson(ctx context.Context, personID string) (Person, error)
	ListPeople(ctx context.Context, kind, status string, limit, offset int) ([]Person, error)
	UpdatePerson(ctx context.Context, personID string, p Person) (bool, error)
	MarkOnboarded(ctx context.Context, personID string, at time.Time) (bool, error)
	MarkSeparated(ctx context.Context, personID string, at time.Time) (bool, error)
	EmailFor(ctx context.Context, personID string) (string, error)
}
