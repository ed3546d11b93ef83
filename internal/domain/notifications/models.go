package notifications

import "time"

type Notification struct {
	ID        string     `json:"id"`
	PersonID  string     `json:"personId"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
