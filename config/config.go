package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/metrics"
	"github.com/kilianp07/flightops/core/scheduling"
	"github.com/kilianp07/flightops/infra/mqtt"
)

type Config struct {
	Engine   scheduling.Config `json:"engine"`
	Snapshot SnapshotConfig    `json:"snapshot"`
	Journal  journal.Config    `json:"journal"`
	Metrics  metrics.Config    `json:"metrics"`
	MQTT     mqtt.Config       `json:"mqtt"`
	API      APIConfig         `json:"api"`
	Sentry   SentryConfig      `json:"sentry"`
}

// Load reads the yaml or json file at path, applies K_ prefixed environment
// overrides (K_ENGINE__SEED=42 sets engine.seed) and validates every
// section. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	c.Engine.SetDefaults()
	c.Snapshot.SetDefaults()
	c.Journal.SetDefaults()
	c.MQTT.SetDefaults()
	c.API.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Snapshot.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	return c.Sentry.Validate()
}
