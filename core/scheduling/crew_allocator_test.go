package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/timeofday"
)

func TestScorer(t *testing.T) {
	sc := DefaultScorer()
	f := model.Flight{AircraftType: "Boeing737"}
	exact := crewMember(0, "A", "Boeing737")
	family := crewMember(1, "B", "Boeing787")
	none := crewMember(2, "C", "Embraer190")
	assert.Equal(t, 100+48, sc.Score(exact, f))
	assert.Equal(t, 50+48, sc.Score(family, f))
	assert.Equal(t, 48, sc.Score(none, f))

	tired := crewMember(3, "D", "Boeing737")
	tired.DutyMinutes = 400
	assert.Equal(t, 100+8, sc.Score(tired, f))
}

func TestScheduleCrewExactBeatsFamily(t *testing.T) {
	s := newTestSession(t, Config{})
	require.NoError(t, s.AddCrew(crewMember(0, "Family", "Boeing787")))
	require.NoError(t, s.AddCrew(crewMember(1, "Exact", "Boeing737")))
	mustAdd(t, s, spec("AA1", 10, 0, 90, model.PriorityDomestic, "Boeing737", false))

	res := s.ScheduleCrew(context.Background())
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, 1, res.Assignments[0].ResourceID)
	assert.Equal(t, 148, res.Assignments[0].Score)

	f := flightByID(t, s, "AA1")
	assert.Equal(t, 1, f.CrewID)
	c := s.Crew()[1]
	assert.False(t, c.Available)
	assert.Equal(t, 90, c.DutyMinutes)
	assert.Equal(t, timeofday.New(11, 30), c.LastFlightEnd)
}

func TestScheduleCrewTieGoesToFirst(t *testing.T) {
	s := newTestSession(t, Config{})
	require.NoError(t, s.AddCrew(crewMember(5, "First", "AirbusA320")))
	require.NoError(t, s.AddCrew(crewMember(6, "Second", "AirbusA320")))
	mustAdd(t, s, spec("AF1", 10, 0, 60, model.PriorityDomestic, "AirbusA320", false))
	s.ScheduleCrew(context.Background())
	assert.Equal(t, 5, flightByID(t, s, "AF1").CrewID)
}

func TestCrewEligibility(t *testing.T) {
	a := CrewAllocator{Scorer: DefaultScorer(), MaxDutyMinutes: 480, MinRestMinutes: 60, PenaltyMinutes: 30}
	f := model.Flight{Departure: timeofday.New(10, 0), AircraftType: "Boeing737"}

	c := crewMember(0, "A", "Boeing737")
	assert.True(t, a.Eligible(c, f))

	c.Available = false
	assert.False(t, a.Eligible(c, f), "unavailable")

	c = crewMember(0, "A", "Boeing737")
	c.DutyMinutes = 480
	assert.False(t, a.Eligible(c, f), "duty cap reached")
	c.DutyMinutes = 479
	assert.True(t, a.Eligible(c, f))

	c = crewMember(0, "A", "Boeing737")
	c.LastFlightEnd = timeofday.New(9, 1)
	assert.False(t, a.Eligible(c, f), "rest window not elapsed")
	c.LastFlightEnd = timeofday.New(9, 0)
	assert.True(t, a.Eligible(c, f), "rest window ends exactly at departure")
}

func TestScheduleCrewNoEligibleCrew(t *testing.T) {
	s := newTestSession(t, Config{})
	tired := crewMember(0, "Tired", "Boeing737")
	tired.DutyMinutes = 480
	require.NoError(t, s.AddCrew(tired))
	mustAdd(t, s, spec("LATE", 10, 0, 60, model.PriorityDomestic, "Boeing737", false))

	res := s.ScheduleCrew(context.Background())
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 30, res.Failures[0].PenaltyMinutes)
	f := flightByID(t, s, "LATE")
	assert.False(t, f.HasCrew())
	assert.Equal(t, model.StatusDelayed, f.Status)
	assert.Equal(t, 30, f.DelayMinutes)
	assert.Equal(t, timeofday.New(10, 0), f.Departure)
}

func TestScheduleCrewHonoursRestWindow(t *testing.T) {
	s := newTestSession(t, Config{})
	rested := crewMember(0, "Rested", "Boeing737")
	rested.LastFlightEnd = timeofday.New(7, 0)
	rested.DutyMinutes = 120
	require.NoError(t, s.AddCrew(rested))
	mustAdd(t, s,
		spec("TOOSOON", 7, 30, 60, model.PriorityDomestic, "Boeing737", false),
		spec("OK", 8, 0, 60, model.PriorityDomestic, "Boeing737", false),
	)
	res := s.ScheduleCrew(context.Background())
	assert.True(t, res.Failed("TOOSOON"))
	id, ok := res.AssignedTo("OK")
	require.True(t, ok)
	assert.Equal(t, 0, id)
	assert.Equal(t, 180, s.Crew()[0].DutyMinutes)
}

func TestClearCrewStartsNewCycle(t *testing.T) {
	s := newTestSession(t, Config{})
	require.NoError(t, s.AddCrew(crewMember(0, "Solo", "Boeing737")))
	mustAdd(t, s, spec("F1", 6, 0, 60, model.PriorityDomestic, "Boeing737", false))
	s.ScheduleCrew(context.Background())

	s.ClearCrewAssignments(context.Background())
	c := s.Crew()[0]
	assert.True(t, c.Available)
	assert.Zero(t, c.DutyMinutes)
	assert.Equal(t, timeofday.Midnight, c.LastFlightEnd)
	assert.False(t, flightByID(t, s, "F1").HasCrew())
}
