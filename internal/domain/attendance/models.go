package attendance

import (
	"errors"
	"time"
)

type Punch struct {
	ID        string     `json:"id"`
	PersonID  string     `json:"personId"`
	Day       time.Time  `json:"day"`
	InAt      time.Time  `json:"inAt"`
	OutAt     *time.Time `json:"outAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Minutes reports the worked span of a closed punch, zero while still open.
func (p Punch) Minutes() int {
	if p.OutAt == nil {
		return 0
	}
	return int(p.OutAt.Sub(p.InAt) / time.Minute)
}

var (
	ErrAlreadyPunchedIn = errors.New("an open punch already exists for today")
	ErrNoOpenPunch      = errors.New("no open punch to close")
	ErrOutBeforeIn      = errors.New("punch-out cannot precede punch-in")
)
