package cranes

import "fmt"

// Window is an inclusive range of hours during which cranes may operate.
type Window struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether hour falls inside the window.
func (w Window) Contains(hour int) bool { return hour >= w.From && hour <= w.To }

// Config holds the crane cycle timings and operating windows.
type Config struct {
	// SeekTicks is the number of ticks needed to collect a new barrel.
	SeekTicks int `json:"seek_ticks"`
	// LoadTicks is the number of ticks needed to carry a barrel to the ship.
	LoadTicks int      `json:"load_ticks"`
	Windows   []Window `json:"windows"`
}

// DefaultConfig returns the timings used on the platform.
func DefaultConfig() Config {
	return Config{SeekTicks: 2, LoadTicks: 3, Windows: defaultWindows()}
}

func defaultWindows() []Window {
	return []Window{{From: 6, To: 14}, {From: 18, To: 24}}
}

// IsZero reports whether no field was set.
func (c Config) IsZero() bool {
	return c.SeekTicks == 0 && c.LoadTicks == 0 && c.Windows == nil
}

// SetDefaults fills the fields that have no valid zero value. A zero
// SeekTicks is kept: cranes then commit to a barrel as soon as they deliver.
// A nil Windows gets the platform windows while an empty one never operates.
func (c *Config) SetDefaults() {
	if c.LoadTicks == 0 {
		c.LoadTicks = 3
	}
	if c.Windows == nil {
		c.Windows = defaultWindows()
	}
}

// Validate checks timings and windows.
func (c Config) Validate() error {
	if c.SeekTicks < 0 {
		return fmt.Errorf("seek_ticks must not be negative")
	}
	if c.LoadTicks < 1 {
		return fmt.Errorf("load_ticks must be at least 1")
	}
	for _, w := range c.Windows {
		if w.From < 0 || w.To > 24 || w.From > w.To {
			return fmt.Errorf("invalid operating window %d-%d", w.From, w.To)
		}
	}
	return nil
}

// Operating reports whether cranes may run at the given hour.
func (c Config) Operating(hour int) bool {
	for _, w := range c.Windows {
		if w.Contains(hour) {
			return true
		}
	}
	return false
}
