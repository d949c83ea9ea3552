package model

import (
	"fmt"
	"strings"

	"github.com/kilianp07/flightops/core/timeofday"
)

// RunwayType restricts which flights a runway accepts.
type RunwayType int

const (
	RunwayAllFlights RunwayType = iota
	RunwayInternationalOnly
	RunwayCargoOnly
)

// String returns a human-readable representation of the runway type.
func (t RunwayType) String() string {
	switch t {
	case RunwayAllFlights:
		return "All Flights"
	case RunwayInternationalOnly:
		return "International Only"
	case RunwayCargoOnly:
		return "Cargo Only"
	default:
		return "Unknown"
	}
}

func (t RunwayType) Valid() bool { return t >= RunwayAllFlights && t <= RunwayCargoOnly }

// ParseRunwayType accepts the String form or a compact form such as
// "all", "international" or "cargo".
func ParseRunwayType(s string) (RunwayType, error) {
	k := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
	switch k {
	case "all", "allflights":
		return RunwayAllFlights, nil
	case "international", "internationalonly":
		return RunwayInternationalOnly, nil
	case "cargo", "cargoonly":
		return RunwayCargoOnly, nil
	}
	return 0, fmt.Errorf("unknown runway type %q", s)
}

func (t RunwayType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *RunwayType) UnmarshalText(b []byte) error {
	v, err := ParseRunwayType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Runway is a physical runway. It stays unavailable while it holds a
// commitment window ending at NextAvailable.
type Runway struct {
	ID            int                 `json:"id"`
	Type          RunwayType          `json:"type"`
	Available     bool                `json:"available"`
	NextAvailable timeofday.TimeOfDay `json:"next_available"`
}

// Accepts applies the compatibility rule between runway type and flight.
func (r Runway) Accepts(f Flight) bool {
	switch r.Type {
	case RunwayAllFlights:
		return true
	case RunwayInternationalOnly:
		return f.Priority == PriorityInternational
	case RunwayCargoOnly:
		return f.Cargo
	}
	return false
}

// Reset releases the runway and rewinds its window to midnight.
func (r *Runway) Reset() {
	r.Available = true
	r.NextAvailable = timeofday.Midnight
}
