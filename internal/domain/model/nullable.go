package model

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// acceptedTimeLayouts are tried in order when parsing a client supplied date.
var acceptedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime accepts RFC 3339, an ISO local date-time or a bare date.
// Values without a zone are read as UTC.
func ParseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// NullableTime distinguishes an absent field (Set=false), an explicit null
// (Set=true, Valid=false) and a value.
type NullableTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		n.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("due_date must be a string or null")
	}
	if s == "" {
		n.Valid = false
		n.Time = time.Time{}
		return nil
	}
	t, err := ParseFlexibleTime(s)
	if err != nil {
		return err
	}
	n.Valid = true
	n.Time = t
	return nil
}

// Ptr returns the value as a *time.Time, nil when null.
func (n NullableTime) Ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}
