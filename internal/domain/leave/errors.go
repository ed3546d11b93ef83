package leave

import "errors"

var (
	ErrOverlap             = errors.New("overlapping leave request exists")
	ErrCounterNotFound     = errors.New("leave counter not found")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrAlreadyProcessed    = errors.New("leave request already processed")
	ErrNotFound            = errors.New("leave request not found")
	ErrUnknownLeaveType    = errors.New("unknown leave type")
	ErrInvalidRange        = errors.New("invalid leave date range")
	ErrReasonRequired      = errors.New("rejection reason required")
	ErrInvalidDecision     = errors.New("decision must be approve or reject")
)
