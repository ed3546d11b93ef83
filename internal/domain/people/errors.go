package people

import "errors"

var (
	ErrNotFound         = errors.New("person not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrAlreadyOnboarded = errors.New("person already onboarded")
	ErrUnknownKind      = errors.New("unknown person kind")
)
