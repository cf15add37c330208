package sim

import (
	"errors"
	"fmt"

	"github.com/kilianp07/offshore/core/cranes"
	"github.com/kilianp07/offshore/core/power"
	"github.com/kilianp07/offshore/core/pumps"
)

// Config describes a platform and the pace of its simulation.
type Config struct {
	Pumps        int    `json:"pumps"`
	Cranes       int    `json:"cranes"`
	ShipCapacity int    `json:"ship_capacity"`
	Start        string `json:"start"`
	TickSeconds  int    `json:"tick_seconds"`
	// MaxShipTicks bounds StepUntilShipFull.
	MaxShipTicks int           `json:"max_ship_ticks"`
	CranesTiming cranes.Config `json:"cranes_timing"`
	Power        power.Config  `json:"power"`
}

// DefaultConfig returns the reference platform: 25 pumps, 10 cranes, ships of
// 1000 barrels and one second ticks starting at noon.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero fields. The crane timing and power sections are
// replaced by their defaults only when left entirely unset; inside a set
// section zero loads, costs and seek times are kept.
func (c *Config) SetDefaults() {
	if c.Pumps == 0 {
		c.Pumps = 25
	}
	if c.Cranes == 0 {
		c.Cranes = 10
	}
	if c.ShipCapacity == 0 {
		c.ShipCapacity = 1000
	}
	if c.Start == "" {
		c.Start = "12:00"
	}
	if c.TickSeconds == 0 {
		c.TickSeconds = 1
	}
	if c.MaxShipTicks == 0 {
		c.MaxShipTicks = 30 * secondsPerDay / c.TickSeconds
	}
	if c.CranesTiming.IsZero() {
		c.CranesTiming = cranes.DefaultConfig()
	}
	c.CranesTiming.SetDefaults()
	if c.Power.IsZero() {
		c.Power = power.DefaultConfig()
	}
	c.Power.SetDefaults()
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Pumps < 1 {
		return fmt.Errorf("pumps: %w: got %d", pumps.ErrInvalidCount, c.Pumps)
	}
	if c.Cranes < 1 {
		return fmt.Errorf("cranes: %w: got %d", cranes.ErrInvalidCount, c.Cranes)
	}
	if c.ShipCapacity < 1 {
		return fmt.Errorf("ship_capacity must be positive, got %d", c.ShipCapacity)
	}
	if _, err := ParseClock(c.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if c.TickSeconds < 1 || 3600%c.TickSeconds != 0 {
		return fmt.Errorf("tick_seconds must divide 3600, got %d", c.TickSeconds)
	}
	if c.MaxShipTicks < 1 {
		return errors.New("max_ship_ticks must be positive")
	}
	if err := c.CranesTiming.Validate(); err != nil {
		return fmt.Errorf("cranes_timing: %w", err)
	}
	if err := c.Power.Validate(); err != nil {
		return fmt.Errorf("power: %w", err)
	}
	return nil
}

// StartClock returns the parsed start time. Validate must have succeeded.
func (c Config) StartClock() Clock {
	clk, _ := ParseClock(c.Start)
	return clk
}
