package timeutil

import (
	"strings"
	"time"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision, used for API timestamps.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision, used for log timestamps.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time marshals as "2024-01-15T10:30:00.000Z" regardless of the zone or
// precision of the wrapped value. Unmarshaling JSON null leaves the value
// untouched, as time.Time does.
type Time struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting any RFC 3339 variant.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}
