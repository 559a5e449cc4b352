package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses are the only statuses considered when checking conflicts.
func ActiveStatuses() []string {
	return []string{string(StatusScheduled), string(StatusConfirmed)}
}

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func IsActive(s Status) bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ===============================
// Source
// ===============================

type Source string

const (
	SourceEmail Source = "email"
	SourcePhone Source = "phone"
	SourceWeb   Source = "web"
)

func IsValidSource(s string) bool {
	switch Source(s) {
	case SourceEmail, SourcePhone, SourceWeb:
		return true
	}
	return false
}

// InitialStatus is forced at create time. A pre-assigned driver does not
// change it; only confirm moves a booking to confirmed.
func InitialStatus() Status {
	return StatusScheduled
}
