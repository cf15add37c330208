package sim

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/kilianp07/offshore/core/cranes"
	"github.com/kilianp07/offshore/core/power"
	"github.com/kilianp07/offshore/core/pumps"
)

// State is a detached copy of the platform taken between ticks.
type State struct {
	RunID     string               `json:"run_id"`
	Clock     Clock                `json:"clock"`
	Elapsed   int                  `json:"elapsed_seconds"`
	Ticks     uint64               `json:"ticks"`
	TotalCost float64              `json:"total_cost"`
	Delivered int                  `json:"delivered"`
	Pumps     pumps.Status         `json:"pumps"`
	Cranes    cranes.Status        `json:"cranes"`
	Power     power.Reconciliation `json:"power"`
	Config    Config               `json:"config"`
}

// Snapshot returns a deep copy of the platform state. The result shares no
// memory with the platform and can be handed to other goroutines.
func (p *Platform) Snapshot() State {
	src := State{
		RunID:     p.runID,
		Clock:     p.clock,
		Elapsed:   p.elapsed,
		Ticks:     p.ticks,
		TotalCost: p.totalCost,
		Delivered: p.delivered,
		Pumps:     p.pumps.Status(),
		Cranes:    p.cranes.Status(),
		Power:     p.last,
		Config:    p.cfg,
	}
	out := new(State)
	if err := deepcopy.Copy(out, &src); err != nil {
		p.log.Errorf("snapshot copy: %v", err)
		return src
	}
	return *out
}

// Restore rebuilds a detached platform from a snapshot. The platform has no
// sink, bus or logger, records no monitoring breadcrumbs and keeps the
// snapshot's run id.
func Restore(st State) (*Platform, error) {
	p, err := New(st.Config, WithRunID(st.RunID))
	if err != nil {
		return nil, err
	}
	if p.pumps, err = pumps.Restore(st.Pumps); err != nil {
		return nil, fmt.Errorf("restore pumps: %w", err)
	}
	if p.cranes, err = cranes.Restore(st.Cranes, p.cfg.CranesTiming); err != nil {
		return nil, fmt.Errorf("restore cranes: %w", err)
	}
	p.clock = st.Clock
	p.elapsed = st.Elapsed
	p.ticks = st.Ticks
	p.totalCost = st.TotalCost
	p.delivered = st.Delivered
	p.last = st.Power
	p.detached = true
	return p, nil
}

// Forecast returns the cost of the next n ticks without advancing the
// platform or notifying its observers.
func (p *Platform) Forecast(n int) (float64, error) {
	sim, err := Restore(p.Snapshot())
	if err != nil {
		return 0, err
	}
	sim.epoch = p.epoch
	return sim.StepN(n), nil
}
