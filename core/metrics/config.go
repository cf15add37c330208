package metrics

import (
	"fmt"

	"github.com/kilianp07/offshore/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr starts the /metrics endpoint when non-empty, e.g. ":9090".
	PrometheusAddr string `json:"prometheus_addr"`
}

// SetDefaults is a no-op: without sinks nothing is recorded.
func (c *Config) SetDefaults() {}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	return nil
}
