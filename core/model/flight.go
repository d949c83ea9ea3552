package model

import (
	"fmt"
	"strings"

	"github.com/kilianp07/flightops/core/timeofday"
)

// Unassigned marks a flight that holds no runway or crew.
const Unassigned = -1

// Priority ranks flights. Lower values are more urgent.
type Priority int

const (
	PriorityEmergency     Priority = 1
	PriorityInternational Priority = 2
	PriorityDomestic      Priority = 3
)

// String returns a human-readable representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityEmergency:
		return "Emergency"
	case PriorityInternational:
		return "International"
	case PriorityDomestic:
		return "Domestic"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool { return p >= PriorityEmergency && p <= PriorityDomestic }

// ParsePriority is the inverse of Priority.String, case-insensitive.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emergency":
		return PriorityEmergency, nil
	case "international":
		return PriorityInternational, nil
	case "domestic":
		return PriorityDomestic, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Status is the lifecycle state of a flight.
//
//	Scheduled -> Delayed     allocator failure, weather or manual delay
//	Delayed   -> Scheduled   full reschedule only
//	Scheduled/Delayed -> Cancelled (terminal, survives reschedule)
//	Emergency is only entered at creation.
type Status int

const (
	StatusScheduled Status = iota
	StatusDelayed
	StatusCancelled
	StatusEmergency
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "Scheduled"
	case StatusDelayed:
		return "Delayed"
	case StatusCancelled:
		return "Cancelled"
	case StatusEmergency:
		return "Emergency"
	default:
		return "Unknown"
	}
}

func (s Status) Valid() bool { return s >= StatusScheduled && s <= StatusEmergency }

// ParseStatus is the inverse of Status.String, case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return StatusScheduled, nil
	case "delayed":
		return StatusDelayed, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "emergency":
		return StatusEmergency, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Flight is a scheduled movement competing for a runway and a crew.
// Runway and crew are referenced by id; Unassigned means none.
type Flight struct {
	ID           string              `json:"id"`
	Origin       string              `json:"origin"`
	Destination  string              `json:"destination"`
	AircraftType string              `json:"aircraft_type"`
	Departure    timeofday.TimeOfDay `json:"departure"`
	Arrival      timeofday.TimeOfDay `json:"arrival"`
	Priority     Priority            `json:"priority"`
	Status       Status              `json:"status"`
	RunwayID     int                 `json:"runway_id"`
	CrewID       int                 `json:"crew_id"`
	DelayMinutes int                 `json:"delay_minutes"`
	Cargo        bool                `json:"cargo"`
}

// HasRunway reports whether a runway is committed to the flight.
func (f Flight) HasRunway() bool { return f.RunwayID != Unassigned }

// HasCrew reports whether a crew member is committed to the flight.
func (f Flight) HasCrew() bool { return f.CrewID != Unassigned }

// Cancelled reports whether the flight left the allocation pool.
func (f Flight) Cancelled() bool { return f.Status == StatusCancelled }

// Duration is the block time, measured forward from departure to arrival.
func (f Flight) Duration() int {
	return f.Departure.MinutesUntil(f.Arrival)
}

// Shift moves departure and arrival together by minutes.
func (f *Flight) Shift(minutes int) {
	f.Departure = f.Departure.AddMinutes(minutes)
	f.Arrival = f.Arrival.AddMinutes(minutes)
}
