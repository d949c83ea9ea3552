package scheduling

import (
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
)

// RunwayAllocator gives each unassigned flight the first compatible runway
// that is free by its departure. It never reorders or revisits decisions.
type RunwayAllocator struct {
	BufferMinutes  int
	PenaltyMinutes int
}

// Eligible reports whether rw can take f right now.
func (a RunwayAllocator) Eligible(rw model.Runway, f model.Flight) bool {
	return rw.Available && rw.Accepts(f) && !rw.NextAvailable.After(f.Departure)
}

// Allocate runs one pass in registry order. Flights already holding a
// runway and cancelled flights are skipped. A flight with no eligible
// runway becomes Delayed and is charged PenaltyMinutes without moving its
// times.
func (a RunwayAllocator) Allocate(flights *registry.Flights, runways *registry.Runways) PassResult {
	res := newPass(PassRunway)
	for i := 0; i < flights.Len(); i++ {
		f := flights.At(i)
		if f.HasRunway() || f.Cancelled() {
			continue
		}
		assigned := false
		for r := 0; r < runways.Len(); r++ {
			rw := runways.At(r)
			if !a.Eligible(*rw, *f) {
				continue
			}
			f.RunwayID = rw.ID
			rw.Available = false
			rw.NextAvailable = f.Arrival.AddMinutes(a.BufferMinutes)
			res.Assignments = append(res.Assignments, Assignment{FlightID: f.ID, ResourceID: rw.ID})
			assigned = true
			break
		}
		if !assigned {
			f.Status = model.StatusDelayed
			f.DelayMinutes += a.PenaltyMinutes
			res.Failures = append(res.Failures, Failure{FlightID: f.ID, PenaltyMinutes: a.PenaltyMinutes})
		}
	}
	return res
}
