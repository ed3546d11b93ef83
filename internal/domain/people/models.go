package people

import "time"

type Person struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Department  string     `json:"department"`
	Designation string     `json:"designation"`
	JoiningDate *time.Time `json:"joiningDate,omitempty"`
	OnboardedAt *time.Time `json:"onboardedAt,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
