package scheduling

import (
	"context"
	"errors"

	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
)

// AddFlight validates spec and appends the flight. Rejections leave the
// registry untouched and are reported on the notification feed.
func (s *Session) AddFlight(ctx context.Context, spec registry.FlightSpec) (model.Flight, error) {
	f, err := s.flights.Insert(spec)
	if err != nil {
		var capErr *registry.CapacityError
		switch {
		case errors.As(err, &capErr):
			s.notes.Errorf("Failed to add flight: Maximum limit reached")
		case errors.Is(err, registry.ErrDuplicateID):
			s.notes.Errorf("Flight ID %s already exists", spec.ID)
		default:
			s.notes.Errorf("Failed to add flight %s: %v", spec.ID, err)
		}
		s.log.Warnf("add flight %s rejected: %v", spec.ID, err)
		return model.Flight{}, err
	}
	s.notes.Infof("Flight %s added successfully", f.ID)
	s.record(ctx, journal.LogRecord{Kind: journal.KindFlightAdded, Flights: []string{f.ID}})
	s.recordSizes()
	return f, nil
}

// DelayFlight shifts a flight by minutes and adds them to its delay total.
// Nothing is reallocated, so held runway and crew windows go stale.
// Cancelled flights keep their status.
func (s *Session) DelayFlight(ctx context.Context, id string, minutes int) (model.Flight, error) {
	if minutes <= 0 {
		s.notes.Errorf("Please enter a valid delay time")
		return model.Flight{}, &registry.ValidationError{Field: "Minutes", Reason: "must be positive"}
	}
	f, ok := s.flights.Get(id)
	if !ok {
		s.notes.Errorf("Flight %s not found", id)
		return model.Flight{}, &registry.NotFoundError{Kind: "flight", ID: id}
	}
	f.Shift(minutes)
	f.DelayMinutes += minutes
	if !f.Cancelled() {
		f.Status = model.StatusDelayed
	}
	s.notes.Infof("Flight %s delayed by %d minutes", id, minutes)
	s.record(ctx, journal.LogRecord{Kind: journal.KindFlightDelayed, Flights: []string{id}, Minutes: minutes})
	s.recordSizes()
	return *f, nil
}

// DeleteFlight removes a flight, keeping the order of the others. Resources
// it held are not released.
func (s *Session) DeleteFlight(ctx context.Context, id string) error {
	if _, err := s.flights.Remove(id); err != nil {
		s.notes.Errorf("Flight %s not found", id)
		return err
	}
	s.notes.Infof("Flight %s deleted", id)
	s.record(ctx, journal.LogRecord{Kind: journal.KindFlightDeleted, Flights: []string{id}})
	s.recordSizes()
	return nil
}

// FindFlight returns a copy of the flight with the given id.
func (s *Session) FindFlight(id string) (model.Flight, error) {
	f, ok := s.flights.Get(id)
	if !ok {
		return model.Flight{}, &registry.NotFoundError{Kind: "flight", ID: id}
	}
	return *f, nil
}

// SearchFlights returns flights whose id contains substr.
func (s *Session) SearchFlights(substr string) []model.Flight {
	return s.flights.Search(substr)
}
