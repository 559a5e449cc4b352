package booking

import "time"

// Overlaps reports whether the half-open windows [s1,e1) and [s2,e2)
// intersect: NOT (e1 <= s2 OR s1 >= e2). A booking ending exactly when
// another starts is not a conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !(!e1.After(s2) || !s1.Before(e2))
}

// ResourceKind tags which side of a booking a conflict was found on.
type ResourceKind string

const (
	ResourceDriver  ResourceKind = "driver"
	ResourceVehicle ResourceKind = "vehicle"
)

// Conflict is one overlapping booking found for a resource.
type Conflict struct {
	Resource  ResourceKind `json:"resource"`
	BookingID uint         `json:"booking_id"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Status    Status       `json:"status"`
}
