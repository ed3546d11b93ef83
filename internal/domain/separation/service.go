package separation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"internhr/internal/domain/notifications"
)

// PersonMarker flips a person to separated status. Satisfied by the people
// store.
type PersonMarker interface {
	MarkSeparated(ctx context.Context, personID string, at time.Time) (bool, error)
}

// Notifier is the subset of the notifications service this package needs.
type Notifier interface {
	Notify(ctx context.Context, personID, ntype, title, body string) error
}

type Service struct {
	store    RequestStore
	people   PersonMarker
	notifier Notifier
}

func NewService(store RequestStore, people PersonMarker, notifier Notifier) *Service {
	return &Service{store: store, people: people, notifier: notifier}
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

func (s *Service) Submit(ctx context.Context, r Request) (Request, error) {
	r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))
	if !KnownKind(r.Kind) {
		return Request{}, ErrUnknownKind
	}
	if strings.TrimSpace(r.Reason) == "" {
		return Request{}, ErrReasonRequired
	}

	pending, err := s.store.HasPending(ctx, r.PersonID)
	if err != nil {
		return Request{}, err
	}
	if pending {
		return Request{}, ErrPendingExists
	}

	r.Status = StatusPending
	id, err := s.store.CreateRequest(ctx, r)
	if err != nil {
		return Request{}, err
	}

	if err := s.notifier.Notify(ctx, r.PersonID, notifications.TypeSeparationSubmitted,
		"Separation request submitted", "Your "+r.Kind+" request is pending review."); err != nil {
		slog.Warn("separation submit notification failed", "personId", r.PersonID, "err", err)
	}
	return s.store.GetRequest(ctx, id)
}

func (s *Service) Get(ctx context.Context, requestID string) (Request, error) {
	return s.store.GetRequest(ctx, requestID)
}

func (s *Service) List(ctx context.Context, personID, status string, limit, offset int) ([]Request, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListRequests(ctx, personID, status, limit, offset)
}

// Decide settles a pending request exactly once. Approval also flips the
// person to separated; notification failures never undo the decision.
func (s *Service) Decide(ctx context.Context, requestID, decision, note string, now time.Time) (Request, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusPending {
		return Request{}, ErrAlreadyProcessed
	}

	var status, ntype, title string
	switch decision {
	case DecisionApprove:
		status, ntype, title = StatusApproved, notifications.TypeSeparationApproved, "Separation approved"
	case DecisionReject:
		if strings.TrimSpace(note) == "" {
			return Request{}, ErrReasonRequired
		}
		status, ntype, title = StatusRejected, notifications.TypeSeparationRejected, "Separation rejected"
	default:
		return Request{}, ErrInvalidDecision
	}

	ok, err := s.store.DecideRequest(ctx, requestID, status, note, now)
	if err != nil {
		return Request{}, err
	}
	if !ok {
		return Request{}, ErrAlreadyProcessed
	}

	if status == StatusApproved {
		if _, err := s.people.MarkSeparated(ctx, req.PersonID, now); err != nil {
			slog.Warn("marking person separated failed", "personId", req.PersonID, "err", err)
		}
	}
	if err := s.notifier.Notify(ctx, req.PersonID, ntype, title, note); err != nil {
		slog.Warn("separation decision notification failed", "personId", req.PersonID, "err", err)
	}
	return s.store.GetRequest(ctx, requestID)
}
