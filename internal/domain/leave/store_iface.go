package leave

import (
	"context"
	"time"
)

type CounterStore interface {
	// CreateCounter inserts a counter; it returns false without error when a
	// counter for (PersonID, LeaveType) already exists.
	CreateCounter(ctx context.Context, c Counter) (bool, error)
	CounterFor(ctx context.Context, personID, leaveType string) (Counter, error)
	CountersForPerson(ctx context.Context, personID string) ([]Counter, error)
	ExpiredCounters(ctx context.Context, now time.Time) ([]Counter, error)
	// ResetCounter rolls the counter into its next 1-year cycle, conditioned
	// on next_reset_date still being in the past. Returns false when another
	// run already reset it.
	ResetCounter(ctx context.Context, counterID string, now time.Time) (bool, error)
}

type RequestStore interface {
	HasOverlap(ctx context.Context, personID string, from, to time.Time) (bool, error)
	CreateRequest(ctx context.Context, r Request) (string, error)
	GetRequest(ctx context.Context, requestID string) (Request, error)
	ListRequests(ctx context.Context, personID, status string, limit, offset int) ([]Request, error)
	// RejectRequest marks the request rejected, conditioned on it still being
	// pending. Returns false when it was already decided.
	RejectRequest(ctx context.Context, requestID, reason string) (bool, error)
	// ApproveRequest debits the counter covering the cycle window containing
	// now and marks the request accepted, both inside one transaction. The
	// counter debit is a conditional update (balance >= days). Returns
	// ErrCounterNotFound, ErrInsufficientBalance or ErrAlreadyProcessed.
	ApproveRequest(ctx context.Context, r Request, now time.Time) error
}
