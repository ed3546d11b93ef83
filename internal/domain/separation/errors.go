package separation

import "errors"

var (
	ErrNotFound         = errors.New("separation request not found")
	ErrUnknownKind      = errors.New("unknown separation kind")
	ErrReasonRequired   = errors.New("reason is required")
	ErrAlreadyProcessed = errors.New("separation request already processed")
	ErrPendingExists    = errors.New("a pending separation request already exists")
	ErrInvalidDecision  = errors.New("decision must be approve or reject")
)
