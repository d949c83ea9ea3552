package scheduling

import "github.com/kilianp07/flightops/core/model"

// Scorer rates how well a crew member fits a flight. Higher is better.
type Scorer interface {
	Score(c model.Crew, f model.Flight) int
}

// QualificationScorer rewards an exact aircraft-type qualification over a
// same-manufacturer one and adds a load-balancing bonus that favours crew
// with more duty time left.
type QualificationScorer struct {
	ExactMatch     int
	FamilyMatch    int
	MaxDutyMinutes int
}

// DefaultScorer uses 100/50 and the 480-minute duty cap.
func DefaultScorer() QualificationScorer {
	return QualificationScorer{
		ExactMatch:     ExactMatchScore,
		FamilyMatch:    FamilyMatchScore,
		MaxDutyMinutes: DefaultMaxDutyMinutes,
	}
}

func (s QualificationScorer) Score(c model.Crew, f model.Flight) int {
	score := 0
	switch {
	case c.Qualified(f.AircraftType):
		score = s.ExactMatch
	case c.SharesFamily(f.AircraftType):
		score = s.FamilyMatch
	}
	return score + (s.MaxDutyMinutes-c.DutyMinutes)/10
}
