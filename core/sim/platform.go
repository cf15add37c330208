package sim

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/offshore/core/cranes"
	"github.com/kilianp07/offshore/core/events"
	"github.com/kilianp07/offshore/core/logger"
	"github.com/kilianp07/offshore/core/metrics"
	"github.com/kilianp07/offshore/core/monitoring"
	"github.com/kilianp07/offshore/core/power"
	"github.com/kilianp07/offshore/core/pumps"
	"github.com/kilianp07/offshore/internal/eventbus"
)

// ErrShipStalled is returned by StepUntilShipFull when the docked ship is not
// full after Config.MaxShipTicks ticks.
var ErrShipStalled = errors.New("ship not filled")

// ShipStalledError locates a stall in its run. It matches ErrShipStalled and
// carries the run tags used by error monitoring.
type ShipStalledError struct {
	RunID     string
	Clock     Clock
	Ticks     int
	Remaining int
}

func (e *ShipStalledError) Error() string {
	return fmt.Sprintf("%v after %d ticks: %d barrels remaining", ErrShipStalled, e.Ticks, e.Remaining)
}

func (e *ShipStalledError) Unwrap() error { return ErrShipStalled }

// Tags implements monitoring.Tagged.
func (e *ShipStalledError) Tags() map[string]string {
	return map[string]string{
		"run_id":         e.RunID,
		"clock":          e.Clock.String(),
		"ticks":          strconv.Itoa(e.Ticks),
		"ship_remaining": strconv.Itoa(e.Remaining),
	}
}

// TickResult is the outcome of a single tick.
type TickResult struct {
	ShipPresent bool
	CostDelta   float64
	Fraction    float64
	Clock       Clock
	// Delivered is the number of barrels that reached the ship this tick.
	Delivered int
	Power     power.Reconciliation
}

// Platform is the simulated offshore platform.
type Platform struct {
	cfg     Config
	runID   string
	pumps   *pumps.Bank
	cranes  *cranes.Group
	arbiter *power.Arbiter

	clock     Clock
	epoch     time.Time
	elapsed   int
	ticks     uint64
	totalCost float64
	delivered int
	last      power.Reconciliation
	// degraded is set while consecutive ticks shed load.
	degraded bool
	detached bool

	sink     metrics.MetricsSink
	sinkErrs int
	bus      eventbus.EventBus[events.Event]
	log      logger.Logger
}

// Option customizes a Platform.
type Option func(*Platform)

// WithSink sends a sample to s after every tick.
func WithSink(s metrics.MetricsSink) Option {
	return func(p *Platform) {
		if s != nil {
			p.sink = s
		}
	}
}

// WithEventBus publishes platform events on b.
func WithEventBus(b eventbus.EventBus[events.Event]) Option {
	return func(p *Platform) { p.bus = b }
}

// WithLogger sets the platform logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Platform) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(p *Platform) {
		if id != "" {
			p.runID = id
		}
	}
}

// WithEpoch sets the wall time matching the start clock. Sample timestamps are
// the epoch plus the simulated time elapsed.
func WithEpoch(t time.Time) Option {
	return func(p *Platform) { p.epoch = t }
}

// New builds a platform from cfg. Zero fields take their defaults.
func New(cfg Config, opts ...Option) (*Platform, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("platform config: %w", err)
	}
	bank, err := pumps.New(cfg.Pumps)
	if err != nil {
		return nil, err
	}
	group, err := cranes.New(cfg.Cranes, cfg.CranesTiming)
	if err != nil {
		return nil, err
	}
	start := cfg.StartClock()
	now := time.Now().UTC()
	p := &Platform{
		cfg:     cfg,
		runID:   uuid.NewString(),
		pumps:   bank,
		cranes:  group,
		arbiter: power.NewArbiter(cfg.Power),
		clock:   start,
		epoch:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, start.SecondOfDay(), 0, time.UTC),
		sink:    metrics.NopSink{},
		log:     logger.NopLogger{},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Tick advances the simulation by one tick.
func (p *Platform) Tick() TickResult {
	p.clock.Advance(p.cfg.TickSeconds)
	p.elapsed += p.cfg.TickSeconds
	hour := p.clock.Hour

	before := p.cranes.ShipRemaining()
	present := p.cranes.Advance(hour)
	delivered := before - p.cranes.ShipRemaining()

	rec := p.arbiter.Reconcile(p.pumps, p.cranes, hour)
	cost := p.arbiter.Cost(rec.Fraction, p.cfg.TickSeconds)
	p.totalCost += cost
	p.ticks++
	p.delivered += delivered
	p.last = rec

	res := TickResult{
		ShipPresent: present,
		CostDelta:   cost,
		Fraction:    rec.Fraction,
		Clock:       p.clock,
		Delivered:   delivered,
		Power:       rec,
	}
	if delivered > 0 && p.cranes.ShipRemaining() == 0 {
		p.log.Infof("ship loaded at %s after %d ticks", p.clock, p.ticks)
		p.publish(events.ShipLoadedEvent{Meta: p.meta(), Ticks: p.ticks})
	}
	if rec.ShedCranes > 0 || rec.ShedPumps > 0 || rec.Saturated {
		p.log.Debugw("load shed", map[string]any{
			"clock":       p.clock.String(),
			"shed_cranes": rec.ShedCranes,
			"shed_pumps":  rec.ShedPumps,
			"saturated":   rec.Saturated,
			"thermal_kw":  rec.ThermalKW,
		})
		p.publish(events.DegradationEvent{
			Meta:       p.meta(),
			ShedCranes: rec.ShedCranes,
			ShedPumps:  rec.ShedPumps,
			Saturated:  rec.Saturated,
			Fraction:   rec.Fraction,
		})
	} else {
		p.degraded = false
	}
	if err := p.sink.RecordTick(p.sample(res)); err != nil {
		p.sinkErrs++
		if p.sinkErrs == 1 || p.sinkErrs%1000 == 0 {
			p.log.Warnf("record tick (%d failures): %v", p.sinkErrs, err)
		}
	}
	return res
}

// StepN runs n ticks and returns their cumulative cost.
func (p *Platform) StepN(n int) float64 {
	var cost float64
	for i := 0; i < n; i++ {
		cost += p.Tick().CostDelta
	}
	return cost
}

// StepUntilShipFull runs ticks while a ship is docked and returns their
// cumulative cost. It returns immediately when no ship is docked, and fails
// with ErrShipStalled once Config.MaxShipTicks ticks have run.
func (p *Platform) StepUntilShipFull() (float64, error) {
	if p.cranes.ShipRemaining() == 0 {
		return 0, nil
	}
	var cost float64
	for i := 0; i < p.cfg.MaxShipTicks; i++ {
		r := p.Tick()
		cost += r.CostDelta
		if !r.ShipPresent {
			return cost, nil
		}
	}
	return cost, p.ShipStalled(p.cfg.MaxShipTicks)
}

// ShipStalled returns the error for a ship still docked after ticks ticks.
func (p *Platform) ShipStalled(ticks int) *ShipStalledError {
	return &ShipStalledError{RunID: p.runID, Clock: p.clock, Ticks: ticks, Remaining: p.cranes.ShipRemaining()}
}

// SetActivePumps asks for n running pump series and returns the count applied.
func (p *Platform) SetActivePumps(n int) int {
	p.pumps.SetActive(n)
	active := p.pumps.Active()
	if p.pumps.Emergency() {
		p.log.Warnf("pump change to %d ignored: emergency active", n)
	} else {
		p.log.Infof("pumps set to %d/%d", active, p.pumps.Total())
	}
	p.publish(events.PumpsChangedEvent{Meta: p.meta(), Requested: n, Active: active})
	return active
}

// TriggerEmergency stops every pump and locks the bank.
func (p *Platform) TriggerEmergency() {
	if p.pumps.Emergency() {
		return
	}
	p.pumps.TriggerEmergency()
	p.log.Warnf("pump emergency engaged at %s", p.clock)
	p.publish(events.EmergencyEvent{Meta: p.meta(), Active: true})
}

// ClearEmergency unlocks the bank. Pumps stay stopped until SetActivePumps.
func (p *Platform) ClearEmergency() {
	if !p.pumps.Emergency() {
		return
	}
	p.pumps.ClearEmergency()
	p.log.Infof("pump emergency cleared at %s", p.clock)
	p.publish(events.EmergencyEvent{Meta: p.meta(), Active: false})
}

// SetActiveMaxCranes sets the crane budget and returns the clamped value.
func (p *Platform) SetActiveMaxCranes(n int) int {
	p.cranes.SetActiveMax(n)
	budget := p.cranes.ActiveMax()
	p.log.Infof("crane budget set to %d/%d", budget, p.cranes.Total())
	p.publish(events.CraneBudgetEvent{Meta: p.meta(), ActiveMax: budget})
	return budget
}

// DockShip docks a ship of the given capacity. It returns false when a ship
// is already docked or the capacity is not positive.
func (p *Platform) DockShip(capacity int) bool {
	if !p.cranes.DockShip(capacity) {
		return false
	}
	p.log.Infof("ship docked at %s, capacity %d", p.clock, capacity)
	p.publish(events.ShipDockedEvent{Meta: p.meta(), Capacity: capacity})
	return true
}

// Pumps returns the pump bank state.
func (p *Platform) Pumps() pumps.Status { return p.pumps.Status() }

// Cranes returns the crane group state.
func (p *Platform) Cranes() cranes.Status { return p.cranes.Status() }

// Clock returns the current time of day.
func (p *Platform) Clock() Clock { return p.clock }

// TotalCost returns the thermal cost accumulated since creation.
func (p *Platform) TotalCost() float64 { return p.totalCost }

// Ticks returns the number of ticks run.
func (p *Platform) Ticks() uint64 { return p.ticks }

// Delivered returns the barrels delivered to ships since creation.
func (p *Platform) Delivered() int { return p.delivered }

// LastReconciliation returns the power balance of the latest tick.
func (p *Platform) LastReconciliation() power.Reconciliation { return p.last }

// RunID identifies this simulation run in events, samples and journals.
func (p *Platform) RunID() string { return p.runID }

// Config returns the validated configuration.
func (p *Platform) Config() Config { return p.cfg }

// Now returns the wall time matching the simulated time.
func (p *Platform) Now() time.Time {
	return p.epoch.Add(time.Duration(p.elapsed) * time.Second)
}

func (p *Platform) meta() events.Meta {
	return events.Meta{RunID: p.runID, Clock: p.clock.String(), Hour: p.clock.Hour, Time: p.Now()}
}

func (p *Platform) publish(e events.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
	if p.detached {
		return
	}
	if _, ok := e.(events.DegradationEvent); ok {
		if p.degraded {
			return
		}
		p.degraded = true
	}
	monitoring.AddBreadcrumb("platform", e.Type(), map[string]any{"run_id": p.runID, "clock": p.clock.String()})
}

func (p *Platform) sample(r TickResult) metrics.TickSample {
	return metrics.TickSample{
		RunID:         p.runID,
		Tick:          p.ticks,
		Clock:         r.Clock.String(),
		Hour:          r.Clock.Hour,
		Fraction:      r.Fraction,
		CostDelta:     r.CostDelta,
		TotalCost:     p.totalCost,
		DemandKW:      r.Power.DemandKW,
		RenewableKW:   r.Power.RenewableKW,
		ThermalKW:     r.Power.ThermalKW,
		ActivePumps:   p.pumps.Active(),
		ActiveCranes:  p.cranes.Active(),
		ShipRemaining: p.cranes.ShipRemaining(),
		Delivered:     r.Delivered,
		ShedCranes:    r.Power.ShedCranes,
		ShedPumps:     r.Power.ShedPumps,
		Saturated:     r.Power.Saturated,
		Time:          p.Now(),
	}
}
