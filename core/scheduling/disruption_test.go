package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/core/registry"
	"github.com/kilianp07/flightops/core/timeofday"
	"github.com/kilianp07/flightops/internal/eventbus"
)

func TestWeatherDelayShiftsChosenFlight(t *testing.T) {
	s := newTestSession(t, Config{}, WithRandom(&seqRandom{vals: []int{1}}))
	require.NoError(t, s.AddRunway(runway(0, model.RunwayAllFlights)))
	mustAdd(t, s,
		spec("W0", 8, 0, 60, model.PriorityDomestic, "Boeing737", false),
		spec("W1", 23, 30, 60, model.PriorityDomestic, "Boeing737", false),
	)
	s.AssignRunways(context.Background())
	before := s.Runways()[0]

	f, err := s.WeatherDelay(context.Background(), 45)
	require.NoError(t, err)
	assert.Equal(t, "W1", f.ID)
	assert.Equal(t, timeofday.New(0, 15), f.Departure)
	assert.Equal(t, timeofday.New(1, 15), f.Arrival)
	assert.Equal(t, 45+15, f.DelayMinutes, "penalty from the failed runway pass plus the weather delay")
	assert.Equal(t, model.StatusDelayed, f.Status)

	// no reallocation happens
	assert.Equal(t, before, s.Runways()[0])
	last, _ := s.Notes().Last()
	assert.True(t, last.Warning)
	assert.Equal(t, "Weather delay: Flight W1 delayed by 45 minutes", last.Message)
}

func TestWeatherDelayEmptyRegistry(t *testing.T) {
	s := newTestSession(t, Config{})
	_, err := s.WeatherDelay(context.Background(), 30)
	assert.True(t, errors.Is(err, ErrNoFlights))
	last, ok := s.Notes().Last()
	require.True(t, ok)
	assert.True(t, last.Error)
	assert.Equal(t, "No flights to delay", last.Message)
}

func TestCancelKeepsResources(t *testing.T) {
	s := newTestSession(t, Config{}, WithRandom(&seqRandom{vals: []int{0}}))
	require.NoError(t, s.AddRunway(runway(0, model.RunwayAllFlights)))
	require.NoError(t, s.AddCrew(crewMember(0, "Capt. Smith", "Boeing737")))
	mustAdd(t, s, spec("CX1", 8, 0, 60, model.PriorityDomestic, "Boeing737", false))
	s.Allocate(context.Background())

	f, err := s.CancelFlight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, f.Status)

	got := flightByID(t, s, "CX1")
	assert.Equal(t, 0, got.RunwayID)
	assert.Equal(t, 0, got.CrewID)
	assert.False(t, s.Runways()[0].Available, "resources are not released")
	assert.False(t, s.Crew()[0].Available)

	rw, cr := s.Allocate(context.Background())
	assert.Empty(t, rw.Assignments)
	assert.Empty(t, rw.Failures)
	assert.Empty(t, cr.Assignments)
	assert.Empty(t, cr.Failures)
	assert.Equal(t, model.StatusCancelled, flightByID(t, s, "CX1").Status)
}

func TestCancelFlightIDNotFound(t *testing.T) {
	s := newTestSession(t, Config{})
	_, err := s.CancelFlightID(context.Background(), "NOPE")
	var nf *registry.NotFoundError
	assert.True(t, errors.As(err, &nf))
	_, err = s.CancelFlight(context.Background())
	assert.ErrorIs(t, err, ErrNoFlights)
}

func TestEmergencyInsertAllocates(t *testing.T) {
	s := newTestSession(t, Config{}, WithRandom(&seqRandom{vals: []int{7}}))
	require.NoError(t, s.AddRunway(runway(0, model.RunwayAllFlights)))
	require.NoError(t, s.AddCrew(crewMember(0, "Capt. Smith", "Boeing737")))

	f, err := s.EmergencyInsert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EMG7", f.ID)
	assert.Equal(t, model.StatusEmergency, f.Status)
	assert.Equal(t, model.PriorityEmergency, f.Priority)
	assert.Equal(t, timeofday.New(9, 0), f.Departure)
	assert.Equal(t, timeofday.New(9, 5), f.Arrival)
	assert.Equal(t, 0, f.RunwayID)
	assert.Equal(t, 0, f.CrewID)

	var found bool
	for _, n := range s.Notifications() {
		if n.Message == "EMERGENCY: Flight EMG7 incoming!" {
			found = n.Error
		}
	}
	assert.True(t, found)
}

func TestEmergencyInsertUniqueIDs(t *testing.T) {
	s := newTestSession(t, Config{}, WithRandom(&seqRandom{vals: []int{3}}))
	seen := map[string]bool{}
	for i := 0; i < 12; i++ {
		f, err := s.EmergencyInsert(context.Background())
		require.NoError(t, err)
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
	}
	assert.True(t, seen["EMG3"])
	assert.True(t, seen["EMG2"])
	assert.True(t, seen["EMG10"])
	assert.True(t, seen["EMG11"])
}

func TestEmergencyInsertAtCapacity(t *testing.T) {
	s := newTestSession(t, Config{MaxFlights: 2})
	mustAdd(t, s,
		spec("F1", 8, 0, 60, model.PriorityDomestic, "Boeing737", false),
		spec("F2", 9, 0, 60, model.PriorityDomestic, "Boeing737", false),
	)
	_, err := s.EmergencyInsert(context.Background())
	var ce *registry.CapacityError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.Limit)
	assert.Len(t, s.Flights(), 2)
	last, _ := s.Notes().Last()
	assert.Equal(t, "Cannot add emergency flight - maximum reached", last.Message)
	assert.Equal(t, "error", last.Severity())
}

func TestEmergencyFailureBecomesDelayed(t *testing.T) {
	s := newTestSession(t, Config{})
	f, err := s.EmergencyInsert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelayed, f.Status)
	assert.Equal(t, 15+30, f.DelayMinutes)
}

func TestNotificationsForwardedToBus(t *testing.T) {
	bus := newBus()
	sub := bus.Subscribe()
	s := newTestSession(t, Config{}, WithNotificationBus(bus))
	_, _ = s.CancelFlight(context.Background())
	n := <-sub
	assert.Equal(t, notify.Notification{Message: "No flights to cancel", Timestamp: timeofday.New(9, 0), Error: true}, n)
}

func newBus() *eventbus.Bus[notify.Notification] {
	return eventbus.New[notify.Notification](4)
}
