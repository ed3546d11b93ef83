package leave

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

const (
	TypeCasual      = "Casual Leave"
	TypeSick        = "Sick Leave"
	TypeBereavement = "Bereavement Leave"
	TypeMaternity   = "Maternity Leave"
)

// DefaultEntitlements are the counters created at onboarding. Maternity Leave
// is excluded on purpose: those counters are opened manually by HR and are
// never auto-reset.
var DefaultEntitlements = []Entitlement{
	{LeaveType: TypeCasual, Days: 9},
	{LeaveType: TypeSick, Days: 12},
	{LeaveType: TypeBereavement, Days: 3},
}

var knownTypes = map[string]bool{
	TypeCasual:      true,
	TypeSick:        true,
	TypeBereavement: true,
	TypeMaternity:   true,
}

var resetExempt = map[string]bool{
	TypeMaternity: true,
}

func KnownType(leaveType string) bool {
	return knownTypes[leaveType]
}

// ResetExempt reports whether the cycle reset job must leave counters of this
// type untouched even after their reset date has passed.
func ResetExempt(leaveType string) bool {
	return resetExempt[leaveType]
}
