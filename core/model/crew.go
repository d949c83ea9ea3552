package model

import (
	"strings"

	"github.com/kilianp07/flightops/core/timeofday"
)

// Families are the manufacturer tokens used for partial qualification matches.
var Families = []string{"Boeing", "Airbus"}

// Crew is a crew member with cumulative duty time for the current cycle.
type Crew struct {
	ID             int                 `json:"id"`
	Name           string              `json:"name"`
	DutyMinutes    int                 `json:"duty_minutes"`
	LastFlightEnd  timeofday.TimeOfDay `json:"last_flight_end"`
	Available      bool                `json:"available"`
	Qualifications []string            `json:"qualifications"`
}

// Qualified reports an exact aircraft-type match.
func (c Crew) Qualified(aircraft string) bool {
	for _, q := range c.Qualifications {
		if q == aircraft {
			return true
		}
	}
	return false
}

// SharesFamily reports whether the crew holds any qualification from the
// same manufacturer family as aircraft.
func (c Crew) SharesFamily(aircraft string) bool {
	fam := Family(aircraft)
	if fam == "" {
		return false
	}
	for _, q := range c.Qualifications {
		if Family(q) == fam {
			return true
		}
	}
	return false
}

// Reset clears duty time and rest tracking for a new cycle.
func (c *Crew) Reset() {
	c.Available = true
	c.DutyMinutes = 0
	c.LastFlightEnd = timeofday.Midnight
}

// Family returns the manufacturer token contained in an aircraft type, or "".
func Family(aircraft string) string {
	for _, f := range Families {
		if strings.Contains(aircraft, f) {
			return f
		}
	}
	return ""
}

// ParseQualifications splits a comma-separated list such as
// "Boeing737,AirbusA320", dropping blanks.
func ParseQualifications(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinQualifications is the inverse of ParseQualifications.
func JoinQualifications(q []string) string {
	return strings.Join(q, ",")
}
