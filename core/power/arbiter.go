package power

import "math"

// PumpLoad is the pump side of the platform as seen by the arbiter.
type PumpLoad interface {
	Active() int
	SetActive(n int)
}

// CraneLoad is the crane side of the platform as seen by the arbiter. Shed
// stops one running crane, chosen by the crane group.
type CraneLoad interface {
	Active() int
	Shed() bool
}

// Reconciliation is the outcome of one balancing pass.
type Reconciliation struct {
	// Fraction of the thermal plant capacity drawn, in [0,1].
	Fraction    float64 `json:"fraction"`
	DemandKW    float64 `json:"demand_kw"`
	RenewableKW float64 `json:"renewable_kw"`
	ThermalKW   float64 `json:"thermal_kw"`
	ShedCranes  int     `json:"shed_cranes"`
	ShedPumps   int     `json:"shed_pumps"`
	// Saturated is set when shedding every consumer was not enough.
	Saturated bool `json:"saturated"`
}

// Arbiter decides how much thermal power the platform draws.
type Arbiter struct {
	cfg Config
}

// NewArbiter creates an arbiter. The configuration is expected to be validated.
func NewArbiter(cfg Config) *Arbiter { return &Arbiter{cfg: cfg} }

// Config returns the arbiter parameters.
func (a *Arbiter) Config() Config { return a.cfg }

// RenewableAt returns the wind power delivered after the inverters at hour.
func (a *Arbiter) RenewableAt(hour int) float64 {
	return a.cfg.Turbines.PowerAt(hour) * a.cfg.InverterEfficiency
}

// ThermalDemand returns the power the thermal plant must supply for a total
// platform demand at the given hour.
func (a *Arbiter) ThermalDemand(demandKW float64, hour int) float64 {
	return math.Max(0, (demandKW-a.RenewableAt(hour))/a.cfg.InverterEfficiency)
}

// Demand returns the total platform draw for the given consumer counts.
func (a *Arbiter) Demand(pumps, cranes int) float64 {
	return a.cfg.AuxiliaryKW + float64(pumps)*a.cfg.PumpKW + float64(cranes)*a.cfg.CraneKW
}

// Reconcile computes the thermal demand and, when it exceeds the plant
// capacity, sheds cranes and then pumps until it fits. Crane shedding lasts
// for the current cycle only; pump shedding changes the bank's active count.
func (a *Arbiter) Reconcile(pumps PumpLoad, cranes CraneLoad, hour int) Reconciliation {
	capacity := a.cfg.ThermalCapacityKW
	r := Reconciliation{RenewableKW: a.RenewableAt(hour)}
	r.DemandKW = a.Demand(pumps.Active(), cranes.Active())
	r.ThermalKW = a.ThermalDemand(r.DemandKW, hour)

	for r.ThermalKW > capacity && cranes.Active() > 0 {
		if !cranes.Shed() {
			break
		}
		r.ShedCranes++
		r.DemandKW -= a.cfg.CraneKW
		r.ThermalKW = a.ThermalDemand(r.DemandKW, hour)
	}
	for r.ThermalKW > capacity && pumps.Active() > 0 {
		before := pumps.Active()
		pumps.SetActive(before - 1)
		if pumps.Active() >= before {
			// Emergency lockout ignores the change.
			break
		}
		r.ShedPumps++
		r.DemandKW -= a.cfg.PumpKW
		r.ThermalKW = a.ThermalDemand(r.DemandKW, hour)
	}

	if r.ThermalKW > capacity {
		r.Saturated = true
		r.Fraction = 1
		return r
	}
	r.Fraction = r.ThermalKW / capacity
	return r
}

// Cost returns the cost of drawing fraction of the plant for the given
// number of seconds.
func (a *Arbiter) Cost(fraction float64, seconds int) float64 {
	return fraction * a.cfg.ThermalCapacityKW * a.cfg.UnitCost * float64(seconds) / 3600
}
