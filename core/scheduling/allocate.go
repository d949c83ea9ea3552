package scheduling

import (
	"context"
	"time"

	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/model"
)

// AssignRunways runs the runway allocator over the whole registry.
func (s *Session) AssignRunways(ctx context.Context) PassResult {
	start := time.Now()
	res := s.runwayAlloc.Allocate(s.flights, s.runways)
	for _, f := range res.Failures {
		s.notes.Warnf("No runway available for flight %s, delayed %d minutes", f.FlightID, f.PenaltyMinutes)
	}
	s.notes.Infof("Runways assigned successfully")
	s.recordPass(ctx, res, time.Since(start))
	s.recordSizes()
	return res
}

// ScheduleCrew runs the crew allocator over the whole registry.
func (s *Session) ScheduleCrew(ctx context.Context) PassResult {
	start := time.Now()
	res := s.crewAlloc.Allocate(s.flights, s.crew)
	for _, f := range res.Failures {
		s.notes.Warnf("No eligible crew for flight %s, delayed %d minutes", f.FlightID, f.PenaltyMinutes)
	}
	s.notes.Infof("Crew scheduled successfully")
	s.recordPass(ctx, res, time.Since(start))
	s.recordSizes()
	return res
}

// Allocate runs the runway pass then the crew pass.
func (s *Session) Allocate(ctx context.Context) (PassResult, PassResult) {
	rw := s.AssignRunways(ctx)
	cr := s.ScheduleCrew(ctx)
	return rw, cr
}

// ClearRunwayAssignments unassigns the runway of every flight, cancelled
// ones included, and releases every runway at 00:00.
func (s *Session) ClearRunwayAssignments(ctx context.Context) {
	for i := 0; i < s.flights.Len(); i++ {
		s.flights.At(i).RunwayID = model.Unassigned
	}
	s.runways.ResetAll()
	s.notes.Infof("All runway assignments cleared")
	s.record(ctx, journal.LogRecord{Kind: journal.KindClear, Detail: "runways"})
	s.recordSizes()
}

// ClearCrewAssignments unassigns the crew of every flight and starts a new
// duty cycle for every crew member.
func (s *Session) ClearCrewAssignments(ctx context.Context) {
	for i := 0; i < s.flights.Len(); i++ {
		s.flights.At(i).CrewID = model.Unassigned
	}
	s.crew.ResetAll()
	s.notes.Infof("All crew assignments cleared")
	s.record(ctx, journal.LogRecord{Kind: journal.KindClear, Detail: "crew"})
	s.recordSizes()
}
