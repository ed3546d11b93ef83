package separation

import (
	"context"
	"time"
)

type RequestStore interface {
	HasPending(ctx context.Context, personID string) (bool, error)
	CreateRequest(ctx context.Context, r Request) (string, error)
	GetRequest(ctx context.Context, requestID string) (Request, error)
	ListRequests(ctx context.Context, personID, status string, limit, offset int) ([]Request, error)
	// DecideRequest flips a pending request to the given terminal status.
	// Returns false when the request was not pending anymore.
	DecideRequest(ctx context.Context, requestID, status, note string, now time.Time) (bool, error)
}
