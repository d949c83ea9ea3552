package config

import "fmt"

// APIConfig defines the HTTP server settings.
type APIConfig struct {
	Addr string `json:"addr"`
	// Token, when set, guards command and journal endpoints.
	Token               string `json:"token"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
}

func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.WriteTimeoutSeconds == 0 {
		c.WriteTimeoutSeconds = 10
	}
}

func (c APIConfig) Validate() error {
	if c.ReadTimeoutSeconds < 0 || c.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("api: timeouts must not be negative")
	}
	return nil
}
