package timezone

import (
	"strings"
	"time"
)

const DefaultTimezone = "UTC"

// Client timestamps arrive as naive local strings. They are parsed in the
// fleet timezone and stored as UTC; responses serialize RFC3339 UTC.
const (
	clientLayoutMinutes = "2006-01-02T15:04"
	clientLayoutSeconds = "2006-01-02T15:04:05"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseClientTime accepts the booking time pattern YYYY-MM-DDTHH:mm[:ss]
// (no offset), interprets it in tz and returns the UTC instant.
func ParseClientTime(s, tz string) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := Location(tz)

	layout := clientLayoutMinutes
	if len(s) == len(clientLayoutSeconds) {
		layout = clientLayoutSeconds
	}

	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
