package scheduling

import (
	"context"

	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/model"
)

// Reschedule starts a fresh cycle: every non-cancelled flight loses its
// resources, returns to Scheduled and has its delay zeroed; every runway
// and crew member is released; then runways are allocated before crew.
// Cancelled flights keep their status and resource fields.
func (s *Session) Reschedule(ctx context.Context) (PassResult, PassResult, error) {
	if s.flights.Len() == 0 {
		s.notes.Errorf("No flights to reschedule")
		return PassResult{}, PassResult{}, ErrNoFlights
	}
	for i := 0; i < s.flights.Len(); i++ {
		f := s.flights.At(i)
		if f.Cancelled() {
			continue
		}
		f.RunwayID = model.Unassigned
		f.CrewID = model.Unassigned
		f.Status = model.StatusScheduled
		f.DelayMinutes = 0
	}
	s.runways.ResetAll()
	s.crew.ResetAll()

	rw := s.AssignRunways(ctx)
	cr := s.ScheduleCrew(ctx)
	s.notes.Infof("All flights have been rescheduled")
	s.record(ctx, journal.LogRecord{Kind: journal.KindReschedule, Detail: rw.ID + "," + cr.ID})
	s.recordDisruption("reschedule", "", 0)
	return rw, cr, nil
}
