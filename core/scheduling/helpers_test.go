package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
	"github.com/kilianp07/flightops/core/timeofday"
)

// seqRandom returns its values in order, wrapping, each reduced modulo n.
type seqRandom struct {
	vals []int
	i    int
}

func (r *seqRandom) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func newTestSession(t *testing.T, cfg Config, opts ...Option) *Session {
	t.Helper()
	ResetMetrics(nil)
	opts = append([]Option{
		WithRandom(&seqRandom{vals: []int{0}}),
		WithClock(timeofday.FixedClock(timeofday.New(9, 0))),
	}, opts...)
	s, err := NewSession(cfg, opts...)
	require.NoError(t, err)
	return s
}

func spec(id string, h, m, dur int, p model.Priority, aircraft string, cargo bool) registry.FlightSpec {
	return registry.FlightSpec{
		ID:              id,
		Origin:          "JFK",
		Destination:     "LHR",
		AircraftType:    aircraft,
		Departure:       timeofday.New(h, m),
		DurationMinutes: dur,
		Priority:        p,
		Cargo:           cargo,
	}
}

func mustAdd(t *testing.T, s *Session, specs ...registry.FlightSpec) {
	t.Helper()
	for _, sp := range specs {
		_, err := s.AddFlight(context.Background(), sp)
		require.NoError(t, err)
	}
}

func runway(id int, typ model.RunwayType) model.Runway {
	return model.Runway{ID: id, Type: typ, Available: true}
}

func crewMember(id int, name string, quals ...string) model.Crew {
	return model.Crew{ID: id, Name: name, Available: true, Qualifications: quals}
}

func flightByID(t *testing.T, s *Session, id string) model.Flight {
	t.Helper()
	f, err := s.FindFlight(id)
	require.NoError(t, err)
	return f
}
