// Package journal keeps an audit trail of scheduling commands: allocation
// passes, disruptions and reschedules. Unlike the bounded notification feed
// the journal is durable and queryable.
package journal

import (
	"context"
	"time"
)

// Kind classifies a journal record.
type Kind string

const (
	KindRunwayPass    Kind = "runway_pass"
	KindCrewPass      Kind = "crew_pass"
	KindWeatherDelay  Kind = "weather_delay"
	KindEmergency     Kind = "emergency"
	KindCancellation  Kind = "cancellation"
	KindReschedule    Kind = "reschedule"
	KindFlightAdded   Kind = "flight_added"
	KindFlightDelayed Kind = "flight_delayed"
	KindFlightDeleted Kind = "flight_deleted"
	KindClear         Kind = "clear"
)

// LogRecord captures one command and its outcome.
type LogRecord struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Kind        Kind           `json:"kind"`
	Flights     []string       `json:"flights,omitempty"`
	Assignments map[string]int `json:"assignments,omitempty"`
	Failures    map[string]int `json:"failures,omitempty"`
	Minutes     int            `json:"minutes,omitempty"`
	Detail      string         `json:"detail,omitempty"`
}

// LogQuery filters records. Zero fields match everything.
type LogQuery struct {
	Start    time.Time
	End      time.Time
	FlightID string
	Kind     Kind
}

// Match reports whether r satisfies every set filter.
func (q LogQuery) Match(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	if q.FlightID == "" {
		return true
	}
	for _, id := range r.Flights {
		if id == q.FlightID {
			return true
		}
	}
	if _, ok := r.Assignments[q.FlightID]; ok {
		return true
	}
	_, ok := r.Failures[q.FlightID]
	return ok
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, LogRecord) error { return nil }
func (NopStore) Query(context.Context, LogQuery) ([]LogRecord, error) {
	return nil, nil
}
func (NopStore) Close() error { return nil }
