package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/timeofday"
)

func seededSession(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t, Config{}, WithRandom(&seqRandom{vals: []int{2, 0}}))
	require.NoError(t, s.AddRunway(runway(0, model.RunwayAllFlights)))
	require.NoError(t, s.AddRunway(runway(1, model.RunwayInternationalOnly)))
	require.NoError(t, s.AddRunway(runway(2, model.RunwayCargoOnly)))
	require.NoError(t, s.AddCrew(crewMember(0, "Capt. Smith", "Boeing737", "AirbusA320")))
	require.NoError(t, s.AddCrew(crewMember(1, "F/O Johnson", "Boeing787", "AirbusA350")))
	require.NoError(t, s.AddCrew(crewMember(2, "Capt. Williams", "Boeing737", "Embraer190")))
	mustAdd(t, s,
		spec("BA117", 8, 0, 420, model.PriorityInternational, "Boeing787", false),
		spec("UA900", 8, 30, 90, model.PriorityDomestic, "Boeing737", false),
		spec("FX10", 9, 0, 120, model.PriorityDomestic, "Boeing777", true),
		spec("DL55", 9, 15, 60, model.PriorityDomestic, "AirbusA320", false),
	)
	return s
}

func TestRescheduleResetsAndReallocates(t *testing.T) {
	s := seededSession(t)
	ctx := context.Background()
	s.Allocate(ctx)
	_, err := s.WeatherDelay(ctx, 30)
	require.NoError(t, err)
	_, err = s.CancelFlight(ctx)
	require.NoError(t, err)
	cancelled := flightByID(t, s, "BA117")
	require.Equal(t, model.StatusCancelled, cancelled.Status)

	rw, cr, err := s.Reschedule(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, rw.ID)
	assert.NotEmpty(t, cr.ID)

	after := flightByID(t, s, "BA117")
	assert.Equal(t, cancelled, after, "cancelled flights survive reschedule untouched")

	for _, f := range s.Flights() {
		if f.Cancelled() {
			continue
		}
		if !rw.Failed(f.ID) && !cr.Failed(f.ID) {
			assert.Equal(t, model.StatusScheduled, f.Status, f.ID)
			assert.Zero(t, f.DelayMinutes, f.ID)
		}
	}
	last, _ := s.Notes().Last()
	assert.Equal(t, "All flights have been rescheduled", last.Message)
}

func TestRescheduleIsReproducible(t *testing.T) {
	ctx := context.Background()
	fresh := seededSession(t)
	fresh.Allocate(ctx)
	want := fresh.Flights()

	s := seededSession(t)
	s.Allocate(ctx)
	_, err := s.WeatherDelay(ctx, 10)
	require.NoError(t, err)
	s.ClearRunwayAssignments(ctx)
	_, _, err = s.Reschedule(ctx)
	require.NoError(t, err)

	// the weather delay moved UA900 or FX10, so compare only assignments of
	// flights whose times are unchanged
	got := s.Flights()
	for i := range want {
		if want[i].Departure != got[i].Departure {
			continue
		}
		assert.Equal(t, want[i].RunwayID, got[i].RunwayID, want[i].ID)
		assert.Equal(t, want[i].CrewID, got[i].CrewID, want[i].ID)
	}
}

func TestRescheduleTwiceIsStable(t *testing.T) {
	ctx := context.Background()
	s := seededSession(t)
	_, _, err := s.Reschedule(ctx)
	require.NoError(t, err)
	first := s.Flights()
	_, _, err = s.Reschedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, s.Flights())
	for _, rw := range s.Runways() {
		if rw.Available {
			assert.Equal(t, timeofday.Midnight, rw.NextAvailable)
		}
	}
}

func TestRescheduleEmptyRegistry(t *testing.T) {
	s := newTestSession(t, Config{})
	require.NoError(t, s.AddRunway(runway(0, model.RunwayAllFlights)))
	_, _, err := s.Reschedule(context.Background())
	assert.ErrorIs(t, err, ErrNoFlights)
	last, _ := s.Notes().Last()
	assert.Equal(t, "No flights to reschedule", last.Message)
	assert.True(t, last.Error)
}

func TestRescheduleResetsEmergencyStatus(t *testing.T) {
	ctx := context.Background()
	s := seededSession(t)
	em, err := s.EmergencyInsert(ctx)
	require.NoError(t, err)
	_, _, err = s.Reschedule(ctx)
	require.NoError(t, err)
	f := flightByID(t, s, em.ID)
	assert.NotEqual(t, model.StatusEmergency, f.Status)
	assert.Equal(t, model.PriorityEmergency, f.Priority)
}

func TestClearRunwayAssignments(t *testing.T) {
	ctx := context.Background()
	s := seededSession(t)
	s.AssignRunways(ctx)
	s.ClearRunwayAssignments(ctx)
	for _, f := range s.Flights() {
		assert.False(t, f.HasRunway(), f.ID)
	}
	for _, rw := range s.Runways() {
		assert.True(t, rw.Available)
		assert.Equal(t, timeofday.Midnight, rw.NextAvailable)
	}
	last, _ := s.Notes().Last()
	assert.Equal(t, "All runway assignments cleared", last.Message)
}
