package leave

import "internhr/internal/platform/querier"

// Store is the postgres-backed implementation of both CounterStore and
// RequestStore. Counter SQL lives in store_counters.go, request SQL in
// store_requests.go.
type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}
