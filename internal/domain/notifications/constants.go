package notifications

const (
	TypeLeaveSubmitted      = "leave_submitted"
	TypeLeaveApproved       = "leave_approved"
	TypeLeaveRejected       = "leave_rejected"
	TypeSeparationSubmitted = "separation_submitted"
	TypeSeparationApproved  = "separation_approved"
	TypeSeparationRejected  = "separation_rejected"
	TypeOnboarded           = "onboarded"
)
