package leave

import (
	"context"
	"strings"
	"time"
)

// Service enforces the leave request lifecycle and all counter mutation
// rules. Balance is only consumed on approval; applying never deducts.
type Service struct {
	Counters CounterStore
	Requests RequestStore
}

func NewService(counters CounterStore, requests RequestStore) *Service {
	return &Service{Counters: counters, Requests: requests}
}

type ApplyInput struct {
	PersonID     string
	LeaveType    string
	FromDate     time.Time
	ToDate       time.Time
	NumberOfDays int
	Reason       string
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Apply validates and records a new leave request in pending state.
//
// The balance check here is advisory only: it stops obviously hopeless
// requests early, but the authoritative check happens at approval time
// because other approvals may consume balance in between.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (Request, error) {
	if !KnownType(in.LeaveType) {
		return Request{}, ErrUnknownLeaveType
	}

	from := DateOnly(in.FromDate)
	to := DateOnly(in.ToDate)
	if from.IsZero() || to.Before(from) || in.NumberOfDays < 1 {
		return Request{}, ErrInvalidRange
	}

	overlap, err := s.Requests.HasOverlap(ctx, in.PersonID, from, to)
	if err != nil {
		return Request{}, err
	}
	if overlap {
		return Request{}, ErrOverlap
	}

	counter, err := s.Counters.CounterFor(ctx, in.PersonID, in.LeaveType)
	if err != nil {
		return Request{}, err
	}
	if in.NumberOfDays > counter.Balance {
		return Request{}, ErrInsufficientBalance
	}

	req := Request{
		PersonID:     in.PersonID,
		LeaveType:    in.LeaveType,
		FromDate:     from,
		ToDate:       to,
		NumberOfDays: in.NumberOfDays,
		Reason:       in.Reason,
		Status:       StatusPending,
	}
	id, err := s.Requests.CreateRequest(ctx, req)
	if err != nil {
		return Request{}, err
	}
	req.ID = id
	return req, nil
}

// Decide resolves a pending request. A request is decided exactly once;
// repeat decisions fail with ErrAlreadyProcessed regardless of direction.
func (s *Service) Decide(ctx context.Context, requestID, decision, rejectionReason string, now time.Time) (Request, error) {
	req, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusPending {
		return Request{}, ErrAlreadyProcessed
	}

	switch decision {
	case DecisionReject:
		reason := strings.TrimSpace(rejectionReason)
		if reason == "" {
			return Request{}, ErrReasonRequired
		}
		ok, err := s.Requests.RejectRequest(ctx, requestID, reason)
		if err != nil {
			return Request{}, err
		}
		if !ok {
			return Request{}, ErrAlreadyProcessed
		}
		req.Status = StatusRejected
		req.RejectionReason = reason
	case DecisionApprove:
		if err := s.Requests.ApproveRequest(ctx, req, now); err != nil {
			return Request{}, err
		}
		req.Status = StatusAccepted
	default:
		return Request{}, ErrInvalidDecision
	}
	return req, nil
}

// Get returns a single request by id.
func (s *Service) Get(ctx context.Context, requestID string) (Request, error) {
	return s.Requests.GetRequest(ctx, requestID)
}

// List returns requests filtered by optional person and status.
func (s *Service) List(ctx context.Context, personID, status string, limit, offset int) ([]Request, error) {
	return s.Requests.ListRequests(ctx, personID, status, limit, offset)
}

// Balances returns every counter for a person.
func (s *Service) Balances(ctx context.Context, personID string) ([]Counter, error) {
	counters, err := s.Counters.CountersForPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return nil, ErrCounterNotFound
	}
	return counters, nil
}

// CreateCounter opens a counter outside the onboarding defaults, e.g. a
// manually administered Maternity Leave counter. Duplicate creation is
// tolerated and reported via the created flag.
func (s *Service) CreateCounter(ctx context.Context, personID, leaveType string, totalAllowed int, startDate time.Time) (Counter, bool, error) {
	if !KnownType(leaveType) {
		return Counter{}, false, ErrUnknownLeaveType
	}
	if totalAllowed < 1 {
		return Counter{}, false, ErrInvalidRange
	}
	start := DateOnly(startDate)
	counter := Counter{
		PersonID:       personID,
		LeaveType:      leaveType,
		TotalAllowed:   totalAllowed,
		Used:           0,
		Balance:        totalAllowed,
		CycleStartDate: start,
		NextResetDate:  start.AddDate(1, 0, 0),
	}
	created, err := s.Counters.CreateCounter(ctx, counter)
	if err != nil {
		return Counter{}, false, err
	}
	return counter, created, nil
}
