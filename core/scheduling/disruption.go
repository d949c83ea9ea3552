package scheduling

import (
	"context"
	"fmt"

	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
)

// WeatherDelay pushes one randomly chosen flight back by minutes. The
// allocators are not rerun: runway and crew windows committed before the
// shift are left as they were. Cancelled flights keep their status.
func (s *Session) WeatherDelay(ctx context.Context, minutes int) (model.Flight, error) {
	if s.flights.Len() == 0 {
		s.notes.Errorf("No flights to delay")
		return model.Flight{}, ErrNoFlights
	}
	if minutes <= 0 {
		s.notes.Errorf("Please enter a valid delay time")
		return model.Flight{}, &registry.ValidationError{Field: "Minutes", Reason: "must be positive"}
	}
	f := s.flights.At(s.rng.Intn(s.flights.Len()))
	f.Shift(minutes)
	f.DelayMinutes += minutes
	if !f.Cancelled() {
		f.Status = model.StatusDelayed
	}
	s.notes.Warnf("Weather delay: Flight %s delayed by %d minutes", f.ID, minutes)
	s.log.Infow("weather delay", map[string]any{"flight": f.ID, "minutes": minutes})
	s.record(ctx, journal.LogRecord{Kind: journal.KindWeatherDelay, Flights: []string{f.ID}, Minutes: minutes})
	s.recordDisruption("weather", f.ID, minutes)
	s.recordSizes()
	return *f, nil
}

// EmergencyInsert adds an emergency arrival departing now and reruns both
// allocators over the whole registry. It is rejected when the registry is
// full.
func (s *Session) EmergencyInsert(ctx context.Context) (model.Flight, error) {
	if s.flights.Full() {
		s.notes.Errorf("Cannot add emergency flight - maximum reached")
		return model.Flight{}, &registry.CapacityError{Kind: "flight", Limit: s.flights.Limit()}
	}
	dep := s.clock.Now()
	f := model.Flight{
		ID:           s.emergencyID(),
		Origin:       "UNKNOWN",
		Destination:  "THIS AIRPORT",
		AircraftType: "UNKNOWN",
		Departure:    dep,
		Arrival:      dep.AddMinutes(s.cfg.EmergencyDurationMinutes),
		Priority:     model.PriorityEmergency,
		Status:       model.StatusEmergency,
		RunwayID:     model.Unassigned,
		CrewID:       model.Unassigned,
	}
	if err := s.flights.Add(f); err != nil {
		s.notes.Errorf("Cannot add emergency flight: %v", err)
		return model.Flight{}, err
	}
	s.notes.Errorf("EMERGENCY: Flight %s incoming!", f.ID)
	s.log.Warnf("emergency flight %s inserted at %s", f.ID, dep)
	s.record(ctx, journal.LogRecord{Kind: journal.KindEmergency, Flights: []string{f.ID}})
	s.recordDisruption("emergency", f.ID, 0)

	s.AssignRunways(ctx)
	s.ScheduleCrew(ctx)
	out, _ := s.flights.Get(f.ID)
	return *out, nil
}

// emergencyID draws EMG<d> and retries other digits when taken, then falls
// back to two-digit suffixes.
func (s *Session) emergencyID() string {
	start := s.rng.Intn(10)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("EMG%d", (start+i)%10)
		if !s.flights.Contains(id) {
			return id
		}
	}
	for n := 10; ; n++ {
		id := fmt.Sprintf("EMG%d", n)
		if !s.flights.Contains(id) {
			return id
		}
	}
}

// CancelFlight cancels one randomly chosen flight.
func (s *Session) CancelFlight(ctx context.Context) (model.Flight, error) {
	if s.flights.Len() == 0 {
		s.notes.Errorf("No flights to cancel")
		return model.Flight{}, ErrNoFlights
	}
	return s.cancel(ctx, s.flights.At(s.rng.Intn(s.flights.Len()))), nil
}

// CancelFlightID cancels the named flight.
func (s *Session) CancelFlightID(ctx context.Context, id string) (model.Flight, error) {
	f, ok := s.flights.Get(id)
	if !ok {
		s.notes.Errorf("Flight %s not found", id)
		return model.Flight{}, &registry.NotFoundError{Kind: "flight", ID: id}
	}
	return s.cancel(ctx, f), nil
}

// cancel marks f Cancelled. Its runway and crew stay committed.
func (s *Session) cancel(ctx context.Context, f *model.Flight) model.Flight {
	f.Status = model.StatusCancelled
	s.notes.Errorf("Flight %s has been cancelled", f.ID)
	s.log.Infow("flight cancelled", map[string]any{"flight": f.ID, "runway": f.RunwayID, "crew": f.CrewID})
	s.record(ctx, journal.LogRecord{Kind: journal.KindCancellation, Flights: []string{f.ID}})
	s.recordDisruption("cancellation", f.ID, 0)
	s.recordSizes()
	return *f
}
