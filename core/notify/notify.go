// Package notify holds the bounded notification feed of the scheduling
// engine. Every command outcome is appended here; the surrounding
// application reads it to surface messages to its operators.
package notify

import (
	"fmt"

	"github.com/kilianp07/flightops/core/timeofday"
	"github.com/kilianp07/flightops/internal/eventbus"
)

// DefaultCapacity matches the historical notification buffer.
const DefaultCapacity = 100

// Notification is one entry of the feed.
type Notification struct {
	Message   string              `json:"message"`
	Timestamp timeofday.TimeOfDay `json:"timestamp"`
	Warning   bool                `json:"warning"`
	Error     bool                `json:"error"`
}

// Severity returns "error", "warning" or "info".
func (n Notification) Severity() string {
	switch {
	case n.Error:
		return "error"
	case n.Warning:
		return "warning"
	}
	return "info"
}

// Log is a fixed-capacity append-only ring: once full, each append evicts
// the oldest entry. It has no internal locking.
type Log struct {
	buf   []Notification
	head  int
	size  int
	clock timeofday.Clock
	bus   *eventbus.Bus[Notification]
}

// NewLog creates a log holding up to capacity entries. A nil clock uses the
// system clock.
func NewLog(capacity int, clock timeofday.Clock) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if clock == nil {
		clock = timeofday.SystemClock{}
	}
	return &Log{buf: make([]Notification, capacity), clock: clock}
}

// Attach forwards every future entry to bus.
func (l *Log) Attach(bus *eventbus.Bus[Notification]) { l.bus = bus }

// Add appends a notification stamped with the current clock time.
func (l *Log) Add(msg string, warning, isErr bool) Notification {
	n := Notification{Message: msg, Timestamp: l.clock.Now(), Warning: warning, Error: isErr}
	idx := (l.head + l.size) % len(l.buf)
	if l.size == len(l.buf) {
		l.head = (l.head + 1) % len(l.buf)
	} else {
		l.size++
	}
	l.buf[idx] = n
	if l.bus != nil {
		l.bus.Publish(n)
	}
	return n
}

func (l *Log) Infof(format string, args ...any) Notification {
	return l.Add(fmt.Sprintf(format, args...), false, false)
}

func (l *Log) Warnf(format string, args ...any) Notification {
	return l.Add(fmt.Sprintf(format, args...), true, false)
}

func (l *Log) Errorf(format string, args ...any) Notification {
	return l.Add(fmt.Sprintf(format, args...), false, true)
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return l.size }

// Cap returns the configured capacity.
func (l *Log) Cap() int { return len(l.buf) }

// Entries returns a copy of the retained entries, oldest first.
func (l *Log) Entries() []Notification {
	out := make([]Notification, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	return out
}

// Latest returns up to n most recent entries, oldest first.
func (l *Log) Latest(n int) []Notification {
	all := l.Entries()
	if n <= 0 || n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}

// Last returns the most recent entry.
func (l *Log) Last() (Notification, bool) {
	if l.size == 0 {
		return Notification{}, false
	}
	return l.buf[(l.head+l.size-1)%len(l.buf)], true
}
