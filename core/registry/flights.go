package registry

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/timeofday"
)

// Default registry limits.
const (
	MaxFlights = 100
	MaxRunways = 5
	MaxCrew    = 30
)

// MaxTextLen bounds every stored string field.
const MaxTextLen = 49

var validate = validator.New()

// FlightSpec carries the caller-supplied fields of a new flight.
type FlightSpec struct {
	ID              string              `json:"id" validate:"required,max=49"`
	Origin          string              `json:"origin" validate:"required,max=49"`
	Destination     string              `json:"destination" validate:"required,max=49"`
	AircraftType    string              `json:"aircraft_type" validate:"required,max=49"`
	Departure       timeofday.TimeOfDay `json:"departure"`
	DurationMinutes int                 `json:"duration_minutes" validate:"gte=1,lt=1440"`
	Priority        model.Priority      `json:"priority" validate:"oneof=1 2 3"`
	Cargo           bool                `json:"cargo"`
}

// Validate checks s and returns a *ValidationError for the first
// offending field.
func (s FlightSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " check"}
		}
		return &ValidationError{Reason: err.Error()}
	}
	if !s.Departure.Valid() {
		return &ValidationError{Field: "Departure", Reason: "outside 00:00-23:59"}
	}
	return nil
}

// Build returns the flight described by s: arrival is departure plus
// duration on the 24-hour dial, status Scheduled, no resources.
func (s FlightSpec) Build() model.Flight {
	return model.Flight{
		ID:           s.ID,
		Origin:       s.Origin,
		Destination:  s.Destination,
		AircraftType: s.AircraftType,
		Departure:    s.Departure,
		Arrival:      s.Departure.AddMinutes(s.DurationMinutes),
		Priority:     s.Priority,
		Status:       model.StatusScheduled,
		RunwayID:     model.Unassigned,
		CrewID:       model.Unassigned,
		Cargo:        s.Cargo,
	}
}

// Flights is the ordered flight registry. Registry order is the order in
// which allocators visit flights.
type Flights struct {
	c collection[model.Flight, string]
}

// NewFlights creates a registry holding at most limit flights.
// A non-positive limit selects MaxFlights.
func NewFlights(limit int) *Flights {
	if limit <= 0 {
		limit = MaxFlights
	}
	return &Flights{c: newCollection("flight", limit, func(f *model.Flight) string { return f.ID })}
}

// Insert validates spec and appends the resulting flight.
func (r *Flights) Insert(spec FlightSpec) (model.Flight, error) {
	if r.c.full() {
		return model.Flight{}, &CapacityError{Kind: "flight", Limit: r.c.limit}
	}
	if err := spec.Validate(); err != nil {
		return model.Flight{}, err
	}
	f := spec.Build()
	if err := r.c.add(f); err != nil {
		return model.Flight{}, err
	}
	return f, nil
}

// Add appends an already-built flight, enforcing capacity and id uniqueness.
func (r *Flights) Add(f model.Flight) error {
	if strings.TrimSpace(f.ID) == "" {
		return &ValidationError{Field: "ID", Reason: "required"}
	}
	return r.c.add(f)
}

// Get returns the live flight with the given id.
func (r *Flights) Get(id string) (*model.Flight, bool) { return r.c.get(id) }

// Contains reports whether id is registered.
func (r *Flights) Contains(id string) bool { return r.c.index(id) >= 0 }

// Remove deletes the flight and closes the gap, preserving order.
func (r *Flights) Remove(id string) (model.Flight, error) { return r.c.remove(id) }

// At returns the live flight at position i.
func (r *Flights) At(i int) *model.Flight { return r.c.at(i) }

func (r *Flights) Len() int   { return r.c.len() }
func (r *Flights) Limit() int { return r.c.limit }
func (r *Flights) Full() bool { return r.c.full() }
func (r *Flights) Clear()     { r.c.clear() }

// All returns a copy of every flight in registry order.
func (r *Flights) All() []model.Flight { return r.c.snapshot() }

// Search returns flights whose id contains substr.
func (r *Flights) Search(substr string) []model.Flight {
	var out []model.Flight
	for _, f := range r.c.items {
		if strings.Contains(f.ID, substr) {
			out = append(out, f)
		}
	}
	return out
}
