package config

import "fmt"

// SnapshotConfig controls the startup load and shutdown save of the
// registries.
type SnapshotConfig struct {
	// Dir holds flights.dat, runways.dat and crew.dat.
	Dir string `json:"dir"`
	// Disabled skips both load and save.
	Disabled bool `json:"disabled"`
}

func (c *SnapshotConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "data"
	}
}

func (c SnapshotConfig) Validate() error {
	if !c.Disabled && c.Dir == "" {
		return fmt.Errorf("snapshot: dir is required")
	}
	return nil
}
