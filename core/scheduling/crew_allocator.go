package scheduling

import (
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
)

// CrewAllocator picks the highest scoring eligible crew member for each
// unassigned flight.
type CrewAllocator struct {
	Scorer         Scorer
	MaxDutyMinutes int
	MinRestMinutes int
	PenaltyMinutes int
}

// Eligible applies the availability, duty cap and rest window rules.
func (a CrewAllocator) Eligible(c model.Crew, f model.Flight) bool {
	if !c.Available || c.DutyMinutes >= a.MaxDutyMinutes {
		return false
	}
	return !f.Departure.Before(c.LastFlightEnd.AddMinutes(a.MinRestMinutes))
}

// Best returns the index of the winning crew member for f, or -1. Ties go
// to the earliest crew in registry order.
func (a CrewAllocator) Best(crew *registry.Crews, f model.Flight) (int, int) {
	best, bestScore := -1, -1
	for c := 0; c < crew.Len(); c++ {
		cm := crew.At(c)
		if !a.Eligible(*cm, f) {
			continue
		}
		if s := a.Scorer.Score(*cm, f); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}

// Allocate runs one pass in registry order. The chosen crew becomes
// unavailable, its last flight end moves to the arrival and the block time
// is added to its duty. A flight with no eligible crew becomes Delayed and
// is charged PenaltyMinutes without moving its times.
func (a CrewAllocator) Allocate(flights *registry.Flights, crew *registry.Crews) PassResult {
	res := newPass(PassCrew)
	for i := 0; i < flights.Len(); i++ {
		f := flights.At(i)
		if f.HasCrew() || f.Cancelled() {
			continue
		}
		idx, score := a.Best(crew, *f)
		if idx < 0 {
			f.Status = model.StatusDelayed
			f.DelayMinutes += a.PenaltyMinutes
			res.Failures = append(res.Failures, Failure{FlightID: f.ID, PenaltyMinutes: a.PenaltyMinutes})
			continue
		}
		cm := crew.At(idx)
		f.CrewID = cm.ID
		cm.Available = false
		cm.LastFlightEnd = f.Arrival
		cm.DutyMinutes += f.Duration()
		res.Assignments = append(res.Assignments, Assignment{FlightID: f.ID, ResourceID: cm.ID, Score: score})
	}
	return res
}
