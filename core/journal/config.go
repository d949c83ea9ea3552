package journal

import "fmt"

// Config selects and tunes the journal backend.
type Config struct {
	// Backend is "jsonl", "sqlite" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
	// MaxSizeMB enables rotation of the jsonl backend when positive.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" && c.Backend != "none" {
		c.Path = "schedule-journal.log"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "jsonl", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("journal: path is required")
		}
	case "none":
	default:
		return fmt.Errorf("journal: unknown backend %s", c.Backend)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("journal: rotation limits must not be negative")
	}
	return nil
}

// Open creates the store selected by c.
func Open(c Config) (LogStore, error) {
	switch c.Backend {
	case "none":
		return NopStore{}, nil
	case "sqlite":
		return NewSQLiteStore(c.Path)
	case "jsonl", "":
		if c.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
		}
		return NewJSONLStore(c.Path)
	}
	return nil, fmt.Errorf("journal: unknown backend %s", c.Backend)
}
