package leave

import "time"

// Counter is the per-person-per-leave-type entitlement record. Balance always
// equals TotalAllowed - Used after any committed mutation; both stay within
// [0, TotalAllowed]. Exactly one counter exists per (PersonID, LeaveType).
type Counter struct {
	ID             string    `json:"id"`
	PersonID       string    `json:"personId"`
	LeaveType      string    `json:"leaveType"`
	TotalAllowed   int       `json:"totalAllowed"`
	Used           int       `json:"used"`
	Balance        int       `json:"balance"`
	CycleStartDate time.Time `json:"cycleStartDate"`
	NextResetDate  time.Time `json:"nextResetDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Request is a leave application. Dates are date-only; FromDate and ToDate
// are inclusive. Status moves pending -> accepted|rejected exactly once.
type Request struct {
	ID              string     `json:"id"`
	PersonID        string     `json:"personId"`
	LeaveType       string     `json:"leaveType"`
	FromDate        time.Time  `json:"fromDate"`
	ToDate          time.Time  `json:"toDate"`
	NumberOfDays    int        `json:"numberOfDays"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	DecidedAt       *time.Time `json:"decidedAt,omitempty"`
}

// Entitlement pairs a leave type with its annual allowance.
type Entitlement struct {
	LeaveType string
	Days      int
}
