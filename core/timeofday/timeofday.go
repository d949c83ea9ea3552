// Package timeofday implements wall-clock arithmetic on a 24-hour dial.
//
// Values carry no date: adding minutes wraps past midnight and the forward
// difference between two times is always taken in the direction of the
// clock, so 23:50 -> 00:10 is 20 minutes.
package timeofday

import (
	"fmt"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// Midnight is 00:00.
var Midnight = TimeOfDay{}

// TimeOfDay is an hour/minute pair in [00:00, 23:59].
type TimeOfDay struct {
	Hour   int
	Minute int
}

// New returns the normalised time for hour:minute.
func New(hour, minute int) TimeOfDay {
	return FromMinutes(hour*MinutesPerHour + minute)
}

// FromMinutes converts minutes since midnight, wrapping into a single day.
func FromMinutes(m int) TimeOfDay {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return TimeOfDay{Hour: m / MinutesPerHour, Minute: m % MinutesPerHour}
}

// FromTime extracts the local wall-clock time from t.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Parse reads "HH:MM".
func Parse(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Minutes returns minutes elapsed since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*MinutesPerHour + t.Minute
}

// Valid reports whether the fields are inside the 24-hour dial.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < MinutesPerHour
}

// AddMinutes shifts t by m minutes with 24-hour wraparound.
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	return FromMinutes(t.Minutes() + m)
}

// MinutesUntil returns the forward distance from t to u, in [0, 1440).
// If u is earlier on the dial than t it is taken to be on the next day.
func (t TimeOfDay) MinutesUntil(u TimeOfDay) int {
	from, to := t.Minutes(), u.Minutes()
	if to < from {
		to += MinutesPerDay
	}
	return to - from
}

// Compare orders two times on the same day: -1, 0 or +1.
func (t TimeOfDay) Compare(u TimeOfDay) int {
	a, b := t.Minutes(), u.Minutes()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// After reports whether t is strictly later than u on the same day.
func (t TimeOfDay) After(u TimeOfDay) bool { return t.Compare(u) > 0 }

// Before reports whether t is strictly earlier than u on the same day.
func (t TimeOfDay) Before(u TimeOfDay) bool { return t.Compare(u) < 0 }

// String formats t as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() TimeOfDay
}

// SystemClock reads the local time of the process.
type SystemClock struct{}

func (SystemClock) Now() TimeOfDay { return FromTime(time.Now()) }

// FixedClock always returns the same time. Useful in tests.
type FixedClock TimeOfDay

func (c FixedClock) Now() TimeOfDay { return TimeOfDay(c) }
