package scheduling

import "github.com/google/uuid"

// PassKind names an allocator.
type PassKind string

const (
	PassRunway PassKind = "runway"
	PassCrew   PassKind = "crew"
)

// Assignment binds one flight to a runway or crew id.
type Assignment struct {
	FlightID   string `json:"flight_id"`
	ResourceID int    `json:"resource_id"`
	// Score is the winning crew score; zero for runway passes.
	Score int `json:"score,omitempty"`
}

// Failure records a flight the pass could not serve and the structural
// delay it was charged.
type Failure struct {
	FlightID       string `json:"flight_id"`
	PenaltyMinutes int    `json:"penalty_minutes"`
}

// PassResult summarises one allocator run.
type PassResult struct {
	ID          string       `json:"id"`
	Kind        PassKind     `json:"kind"`
	Assignments []Assignment `json:"assignments"`
	Failures    []Failure    `json:"failures"`
}

func newPass(kind PassKind) PassResult {
	return PassResult{ID: uuid.NewString(), Kind: kind}
}

// AssignedTo returns the resource id bound to flightID in this pass.
func (p PassResult) AssignedTo(flightID string) (int, bool) {
	for _, a := range p.Assignments {
		if a.FlightID == flightID {
			return a.ResourceID, true
		}
	}
	return 0, false
}

// Failed reports whether flightID was charged a penalty in this pass.
func (p PassResult) Failed(flightID string) bool {
	for _, f := range p.Failures {
		if f.FlightID == flightID {
			return true
		}
	}
	return false
}
