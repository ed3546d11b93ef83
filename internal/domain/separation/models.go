package separation

import "time"

type Request struct {
	ID              string     `json:"id"`
	PersonID        string     `json:"personId"`
	Kind            string     `json:"kind"`
	Reason          string     `json:"reason"`
	LastWorkingDate *time.Time `json:"lastWorkingDate,omitempty"`
	Status          string     `json:"status"`
	DecisionNote    string     `json:"decisionNote,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	DecidedAt       *time.Time `json:"decidedAt,omitempty"`
}

const (
	KindResignation = "resignation"
	KindTermination = "termination"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func KnownKind(kind string) bool {
	return kind == KindResignation || kind == KindTermination
}
