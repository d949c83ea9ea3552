package scheduling

import (
	"fmt"

	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/core/registry"
)

// Engine defaults.
const (
	DefaultRunwayBufferMinutes      = 15
	DefaultRunwayPenaltyMinutes     = 15
	DefaultCrewPenaltyMinutes       = 30
	DefaultMaxDutyMinutes           = 480
	DefaultMinRestMinutes           = 60
	DefaultEmergencyDurationMinutes = 5
	ExactMatchScore                 = 100
	FamilyMatchScore                = 50
)

// Config holds capacities and the timing rules applied by the allocators.
type Config struct {
	MaxFlights               int `json:"max_flights"`
	MaxRunways               int `json:"max_runways"`
	MaxCrew                  int `json:"max_crew"`
	NotificationCapacity     int `json:"notification_capacity"`
	RunwayBufferMinutes      int `json:"runway_buffer_minutes"`
	RunwayPenaltyMinutes     int `json:"runway_penalty_minutes"`
	CrewPenaltyMinutes       int `json:"crew_penalty_minutes"`
	MaxDutyMinutes           int `json:"max_duty_minutes"`
	MinRestMinutes           int `json:"min_rest_minutes"`
	EmergencyDurationMinutes int `json:"emergency_duration_minutes"`
	// Seed pins the disruption random source. Zero seeds from the clock.
	Seed int64 `json:"seed"`
	// RosterPath points at a yaml or json runway/crew roster. Empty selects
	// the built-in roster.
	RosterPath string `json:"roster_path"`
}

// SetDefaults fills zero values with the standard engine constants.
func (c *Config) SetDefaults() {
	if c.MaxFlights == 0 {
		c.MaxFlights = registry.MaxFlights
	}
	if c.MaxRunways == 0 {
		c.MaxRunways = registry.MaxRunways
	}
	if c.MaxCrew == 0 {
		c.MaxCrew = registry.MaxCrew
	}
	if c.NotificationCapacity == 0 {
		c.NotificationCapacity = notify.DefaultCapacity
	}
	if c.RunwayBufferMinutes == 0 {
		c.RunwayBufferMinutes = DefaultRunwayBufferMinutes
	}
	if c.RunwayPenaltyMinutes == 0 {
		c.RunwayPenaltyMinutes = DefaultRunwayPenaltyMinutes
	}
	if c.CrewPenaltyMinutes == 0 {
		c.CrewPenaltyMinutes = DefaultCrewPenaltyMinutes
	}
	if c.MaxDutyMinutes == 0 {
		c.MaxDutyMinutes = DefaultMaxDutyMinutes
	}
	if c.MinRestMinutes == 0 {
		c.MinRestMinutes = DefaultMinRestMinutes
	}
	if c.EmergencyDurationMinutes == 0 {
		c.EmergencyDurationMinutes = DefaultEmergencyDurationMinutes
	}
}

// Validate rejects negative values and capacities that cannot hold anything.
func (c Config) Validate() error {
	if c.MaxFlights <= 0 || c.MaxRunways <= 0 || c.MaxCrew <= 0 {
		return fmt.Errorf("engine: capacities must be positive")
	}
	if c.NotificationCapacity <= 0 {
		return fmt.Errorf("engine: notification_capacity must be positive")
	}
	for name, v := range map[string]int{
		"runway_buffer_minutes":  c.RunwayBufferMinutes,
		"runway_penalty_minutes": c.RunwayPenaltyMinutes,
		"crew_penalty_minutes":   c.CrewPenaltyMinutes,
		"min_rest_minutes":       c.MinRestMinutes,
	} {
		if v < 0 {
			return fmt.Errorf("engine: %s must not be negative", name)
		}
	}
	if c.MaxDutyMinutes <= 0 {
		return fmt.Errorf("engine: max_duty_minutes must be positive")
	}
	if c.EmergencyDurationMinutes <= 0 {
		return fmt.Errorf("engine: emergency_duration_minutes must be positive")
	}
	return nil
}
