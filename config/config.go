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

	"github.com/kilianp07/offshore/core/metrics"
	"github.com/kilianp07/offshore/core/sim"
	"github.com/kilianp07/offshore/infra/mqtt"
)

type Config struct {
	Platform sim.Config     `json:"platform"`
	Metrics  metrics.Config `json:"metrics"`
	Journal  JournalConfig  `json:"journal"`
	Logging  LoggingConfig  `json:"logging"`
	// MQTT enables state and event telemetry when present.
	MQTT   *mqtt.Config `json:"mqtt"`
	Sentry SentryConfig `json:"sentry"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Platform.SetDefaults()
	c.Metrics.SetDefaults()
	c.Journal.SetDefaults()
	c.Logging.SetDefaults()
	c.Sentry.SetDefaults()
	if c.MQTT != nil {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Platform.Validate(); err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Sentry.Validate(); err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	if c.MQTT != nil {
		if err := c.MQTT.Validate(); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	return nil
}

// Load reads path (YAML or JSON), applies K_ prefixed environment overrides
// such as K_PLATFORM__PUMPS=10 on top of Default and validates the result.
// Keys that are present win even when zero, so unit_cost: 0 stays free. An
// empty path loads the defaults and the environment only.
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
	cfg := Default()
	// Lists decode element by element onto the existing value.
	if k.Exists("platform.cranes_timing.windows") {
		cfg.Platform.CranesTiming.Windows = nil
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
