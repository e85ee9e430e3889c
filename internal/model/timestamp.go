package model

import "time"

// Timestamp is a point in time in unix milliseconds.
// It serialises as a plain JSON number so records stay compatible
// with snapshots written by the browser extension.
type Timestamp int64

// MillisPerDay is the length of one retention day.
const MillisPerDay = 24 * 60 * 60 * 1000

// NewTimestamp converts t to a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// Time converts the timestamp back to a time.Time in the local zone.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t))
}

// IsZero reports whether the timestamp is unset.
func (t Timestamp) IsZero() bool {
	return t == 0
}
