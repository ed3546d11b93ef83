package attendance

import (
	"context"
	"time"
)

type PunchStore interface {
	// OpenPunch inserts a new open punch unless one already exists for the
	// person on that day. Returns false on conflict.
	OpenPunch(ctx context.Context, personID string, day, inAt time.Time) (bool, error)
	// ClosePunch stamps the open punch for the day. Returns false when there
	// is nothing open.
	ClosePunch(ctx context.Context, personID string, day, outAt time.Time) (bool, error)
	PunchesForPerson(ctx context.Context, personID string, from, to time.Time) ([]Punch, error)
	PunchesForDay(ctx context.Context, day time.Time) ([]Punch, error)
}
