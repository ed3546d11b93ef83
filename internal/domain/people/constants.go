package people

const (
	KindIntern   = "intern"
	KindEmployee = "employee"

	StatusActive    = "active"
	StatusSeparated = "separated"
)

func KnownKind(kind string) bool {
	return kind == KindIntern || kind == KindEmployee
}
