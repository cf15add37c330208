package power

import "fmt"

// TurbineProfile describes the wind farm output over the day. Hours strictly
// between DayAfter and DayBefore use DayKW per turbine, the rest NightKW.
type TurbineProfile struct {
	Count     int     `json:"count"`
	DayKW     float64 `json:"day_kw"`
	NightKW   float64 `json:"night_kw"`
	DayAfter  int     `json:"day_after"`
	DayBefore int     `json:"day_before"`
}

// Day reports whether hour falls in the day window.
func (p TurbineProfile) Day(hour int) bool { return hour > p.DayAfter && hour < p.DayBefore }

// PowerAt returns the raw farm output in kW at the given hour.
func (p TurbineProfile) PowerAt(hour int) float64 {
	if p.Day(hour) {
		return p.DayKW * float64(p.Count)
	}
	return p.NightKW * float64(p.Count)
}

// Config holds the electrical parameters of the platform.
type Config struct {
	AuxiliaryKW        float64        `json:"auxiliary_kw"`
	PumpKW             float64        `json:"pump_kw"`
	CraneKW            float64        `json:"crane_kw"`
	ThermalCapacityKW  float64        `json:"thermal_capacity_kw"`
	InverterEfficiency float64        `json:"inverter_efficiency"`
	UnitCost           float64        `json:"unit_cost"`
	Turbines           TurbineProfile `json:"turbines"`
}

// DefaultConfig returns the platform defaults.
func DefaultConfig() Config {
	return Config{
		AuxiliaryKW:        3620,
		PumpKW:             40,
		CraneKW:            50,
		ThermalCapacityKW:  40100,
		InverterEfficiency: 0.95,
		UnitCost:           1,
		Turbines: TurbineProfile{
			Count:     50,
			DayKW:     80,
			NightKW:   70,
			DayAfter:  7,
			DayBefore: 22,
		},
	}
}

// IsZero reports whether no field was set.
func (c Config) IsZero() bool { return c == Config{} }

// SetDefaults fills the fields that have no valid zero value. Loads, costs and
// turbine parameters are kept as given, so a zero UnitCost or Turbines.Count
// describes free energy or a becalmed farm.
func (c *Config) SetDefaults() {
	if c.ThermalCapacityKW == 0 {
		c.ThermalCapacityKW = 40100
	}
	if c.InverterEfficiency == 0 {
		c.InverterEfficiency = 0.95
	}
}

// Validate checks the electrical parameters.
func (c Config) Validate() error {
	switch {
	case c.AuxiliaryKW < 0 || c.PumpKW < 0 || c.CraneKW < 0:
		return fmt.Errorf("power draws must not be negative")
	case c.ThermalCapacityKW <= 0:
		return fmt.Errorf("thermal_capacity_kw must be positive")
	case c.InverterEfficiency <= 0 || c.InverterEfficiency > 1:
		return fmt.Errorf("inverter_efficiency must be in (0,1], got %v", c.InverterEfficiency)
	case c.UnitCost < 0:
		return fmt.Errorf("unit_cost must not be negative")
	case c.Turbines.Count < 0 || c.Turbines.DayKW < 0 || c.Turbines.NightKW < 0:
		return fmt.Errorf("turbine parameters must not be negative")
	}
	return nil
}
