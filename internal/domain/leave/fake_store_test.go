package leave

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeStore implements CounterStore and RequestStore in memory with the same
// conditional-update semantics as the SQL store, so the ledger can be tested
// without a database, including under concurrency.
type fakeStore struct {
	mu       sync.Mutex
	counters map[string]*Counter // keyed by counter id
	requests map[string]*Request
	nextID   int

	failResetFor map[string]error // counter id -> injected error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counters:     make(map[string]*Counter),
		requests:     make(map[string]*Request),
		failResetFor: make(map[string]error),
	}
}

func (f *fakeStore) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) addCounter(c Counter) *Counter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = f.genID("ctr")
	}
	stored := c
	f.counters[stored.ID] = &stored
	return f.counters[stored.ID]
}

func (f *fakeStore) counterByKey(personID, leaveType string) *Counter {
	for _, c := range f.counters {
		if c.PersonID == personID && c.LeaveType == leaveType {
			return c
		}
	}
	return nil
}

func (f *fakeStore) CreateCounter(ctx context.Context, c Counter) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counterByKey(c.PersonID, c.LeaveType) != nil {
		return false, nil
	}
	c.ID = f.genID("ctr")
	stored := c
	f.counters[stored.ID] = &stored
	return true, nil
}

func (f *fakeStore) CounterFor(ctx context.Context, personID, leaveType string) (Counter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c := f.counterByKey(personID, leaveType); c != nil {
		return *c, nil
	}
	return Counter{}, ErrCounterNotFound
}

func (f *fakeStore) CountersForPerson(ctx context.Context, personID string) ([]Counter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Counter
	for _, c := range f.counters {
		if c.PersonID == personID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) ExpiredCounters(ctx context.Context, now time.Time) ([]Counter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Counter
	for _, c := range f.counters {
		if !c.NextResetDate.After(now) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) ResetCounter(ctx context.Context, counterID string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failResetFor[counterID]; ok {
		return false, err
	}
	c, ok := f.counters[counterID]
	if !ok || c.NextResetDate.After(now) {
		return false, nil
	}
	start := DateOnly(c.NextResetDate)
	c.CycleStartDate = start
	c.NextResetDate = start.AddDate(1, 0, 0)
	c.Used = 0
	c.Balance = c.TotalAllowed
	return true, nil
}

func (f *fakeStore) HasOverlap(ctx context.Context, personID string, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.PersonID != personID || r.Status == StatusRejected {
			continue
		}
		if Overlaps(r.FromDate, r.ToDate, from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateRequest(ctx context.Context, r Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = f.genID("req")
	r.CreatedAt = time.Now()
	stored := r
	f.requests[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeStore) GetRequest(ctx context.Context, requestID string) (Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.requests[requestID]; ok {
		return *r, nil
	}
	return Request{}, ErrNotFound
}

func (f *fakeStore) ListRequests(ctx context.Context, personID, status string, limit, offset int) ([]Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Request
	for _, r := range f.requests {
		if personID != "" && r.PersonID != personID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) RejectRequest(ctx context.Context, requestID, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok || r.Status != StatusPending {
		return false, nil
	}
	now := time.Now()
	r.Status = StatusRejected
	r.RejectionReason = reason
	r.DecidedAt = &now
	return true, nil
}

func (f *fakeStore) ApproveRequest(ctx context.Context, req Request, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	day := DateOnly(now)
	var counter *Counter
	for _, c := range f.counters {
		if c.PersonID == req.PersonID && c.LeaveType == req.LeaveType && c.InCycle(day) {
			counter = c
			break
		}
	}
	if counter == nil {
		return ErrCounterNotFound
	}
	if counter.Balance < req.NumberOfDays {
		return ErrInsufficientBalance
	}
	r, ok := f.requests[req.ID]
	if !ok || r.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	counter.Used += req.NumberOfDays
	counter.Balance -= req.NumberOfDays
	r.Status = StatusAccepted
	r.DecidedAt = &now
	return nil
}
