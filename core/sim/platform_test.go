package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/offshore/core/cranes"
	"github.com/kilianp07/offshore/core/events"
	"github.com/kilianp07/offshore/core/metrics"
	"github.com/kilianp07/offshore/core/monitoring"
	"github.com/kilianp07/offshore/core/pumps"
	"github.com/kilianp07/offshore/internal/eventbus"
)

type captureSink struct {
	samples []metrics.TickSample
	err     error
}

func (s *captureSink) RecordTick(ts metrics.TickSample) error {
	s.samples = append(s.samples, ts)
	return s.err
}

func newPlatform(t *testing.T, cfg Config, opts ...Option) *Platform {
	t.Helper()
	p, err := New(cfg, opts...)
	require.NoError(t, err)
	return p
}

func drain(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestNewDefaults(t *testing.T) {
	p := newPlatform(t, Config{})
	assert.Equal(t, 25, p.Pumps().Active)
	assert.Equal(t, 10, p.Cranes().Total)
	assert.Equal(t, "12:00:00", p.Clock().String())
	assert.Zero(t, p.TotalCost())
	assert.NotEmpty(t, p.RunID())
}

func TestNewInvalidCounts(t *testing.T) {
	_, err := New(Config{Pumps: -1})
	assert.True(t, errors.Is(err, pumps.ErrInvalidCount), "got %v", err)
	_, err = New(Config{Cranes: -3})
	assert.True(t, errors.Is(err, cranes.ErrInvalidCount), "got %v", err)
	_, err = New(Config{TickSeconds: 7})
	assert.Error(t, err)
	_, err = New(Config{Start: "noon"})
	assert.Error(t, err)
}

func TestTickAdvancesClockAndCost(t *testing.T) {
	p := newPlatform(t, Config{Start: "23:59:59"})
	r := p.Tick()
	assert.Equal(t, "00:00:00", r.Clock.String())
	assert.Equal(t, p.Clock(), r.Clock)
	// Night: (3620+25*40 - 50*70*0.95)/0.95 kW drawn for one second.
	thermal := (4620 - 3325.0) / 0.95
	assert.InDelta(t, thermal/40100, r.Fraction, 1e-12)
	assert.InDelta(t, thermal/3600, r.CostDelta, 1e-9)
	assert.False(t, r.ShipPresent)
	assert.Equal(t, uint64(1), p.Ticks())
}

func TestCostMonotonicAndStepNMatchesTicks(t *testing.T) {
	cfg := Config{Start: "05:59:00"}
	a := newPlatform(t, cfg)
	b := newPlatform(t, cfg)
	require.True(t, a.DockShip(50))
	require.True(t, b.DockShip(50))

	var sum float64
	prev := a.TotalCost()
	for i := 0; i < 500; i++ {
		sum += a.Tick().CostDelta
		require.GreaterOrEqual(t, a.TotalCost(), prev)
		prev = a.TotalCost()
	}
	got := b.StepN(500)
	assert.InDelta(t, sum, got, 1e-9)
	assert.InDelta(t, a.TotalCost(), b.TotalCost(), 1e-9)
	assert.Equal(t, a.Cranes(), b.Cranes())
}

func TestStepUntilShipFullWithoutShip(t *testing.T) {
	p := newPlatform(t, Config{})
	cost, err := p.StepUntilShipFull()
	require.NoError(t, err)
	assert.Zero(t, cost)
	assert.Zero(t, p.Ticks())
}

func TestStepUntilShipFullTerminates(t *testing.T) {
	for _, budget := range []int{1, 3, 10} {
		p := newPlatform(t, Config{Start: "10:00"})
		p.SetActiveMaxCranes(budget)
		require.True(t, p.DockShip(40))
		cost, err := p.StepUntilShipFull()
		require.NoError(t, err, "budget %d", budget)
		assert.Zero(t, p.Cranes().ShipRemaining)
		assert.Equal(t, 40, p.Delivered())
		assert.InDelta(t, p.TotalCost(), cost, 1e-9)
	}
}

func TestStepUntilShipFullCrossesClosedWindow(t *testing.T) {
	p := newPlatform(t, Config{Start: "13:59:00"})
	p.SetActiveMaxCranes(1)
	require.True(t, p.DockShip(1000))
	_, err := p.StepUntilShipFull()
	require.NoError(t, err)
	// 1000 barrels at five ticks each cannot finish before 15:00.
	h := p.Clock().Hour
	assert.True(t, h >= 18, "ship should finish after the afternoon pause, got %s", p.Clock())
}

func TestStepUntilShipFullStalls(t *testing.T) {
	p := newPlatform(t, Config{MaxShipTicks: 100})
	p.SetActiveMaxCranes(0)
	require.True(t, p.DockShip(5))
	_, err := p.StepUntilShipFull()
	assert.True(t, errors.Is(err, ErrShipStalled), "got %v", err)
	assert.Equal(t, uint64(100), p.Ticks())
	assert.Equal(t, 5, p.Cranes().ShipRemaining)

	var stall *ShipStalledError
	require.True(t, errors.As(err, &stall))
	tags := monitoring.TagsOf(err, map[string]string{"command": "run"})
	assert.Equal(t, p.RunID(), tags["run_id"])
	assert.Equal(t, p.Clock().String(), tags["clock"])
	assert.Equal(t, "100", tags["ticks"])
	assert.Equal(t, "5", tags["ship_remaining"])
	assert.Equal(t, "run", tags["command"])
}

type crumbMonitor struct {
	monitoring.NopMonitor
	crumbs []string
}

func (m *crumbMonitor) AddBreadcrumb(_, message string, _ map[string]any) {
	m.crumbs = append(m.crumbs, message)
}

func TestBreadcrumbsFollowPlatformEvents(t *testing.T) {
	mon := &crumbMonitor{}
	monitoring.Init(mon)
	defer monitoring.Init(monitoring.NopMonitor{})

	cfg := DefaultConfig()
	cfg.Start = "10:00"
	cfg.Power.AuxiliaryKW = 1e9
	p := newPlatform(t, cfg)
	require.True(t, p.DockShip(10))
	p.StepN(5)
	_, err := p.Forecast(10)
	require.NoError(t, err)
	p.TriggerEmergency()

	assert.Equal(t, []string{"ship_docked", "degradation", "emergency"}, mon.crumbs,
		"degradation is recorded once per episode and forecasts stay silent")
}

func TestSingleCraneScenario(t *testing.T) {
	p := newPlatform(t, Config{Cranes: 1, Start: "10:00"})
	require.True(t, p.DockShip(1))
	p.StepN(2)
	c := p.Cranes().Cranes[0]
	assert.Equal(t, cranes.Loading, c.State())
	assert.Equal(t, 0, c.Progress)
	p.StepN(3)
	assert.Zero(t, p.Cranes().ShipRemaining)
	r := p.Tick()
	assert.False(t, r.ShipPresent)
}

func TestEmergencyLocksPumps(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sub := bus.Subscribe()
	epoch := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newPlatform(t, Config{}, WithEventBus(bus), WithEpoch(epoch))
	meta := events.Meta{RunID: p.RunID(), Clock: "12:00:00", Hour: 12, Time: epoch}

	p.TriggerEmergency()
	p.TriggerEmergency()
	assert.Zero(t, p.SetActivePumps(12))
	assert.True(t, p.Pumps().RedLight())
	assert.False(t, p.Pumps().YellowLight())
	p.ClearEmergency()
	assert.Zero(t, p.Pumps().Active)
	assert.Equal(t, 12, p.SetActivePumps(12))

	evs := drain(sub)
	require.Len(t, evs, 4)
	assert.Equal(t, events.EmergencyEvent{Meta: meta, Active: true}, evs[0])
	assert.Equal(t, "pumps_changed", evs[1].Type())
	assert.Equal(t, events.EmergencyEvent{Meta: meta, Active: false}, evs[2])
	assert.Equal(t, events.PumpsChangedEvent{Meta: meta, Requested: 12, Active: 12}, evs[3])
}

func TestShipEventsAndSamples(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sub := bus.Subscribe()
	sink := &captureSink{}
	epoch := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	p := newPlatform(t, Config{Cranes: 2, Start: "10:00"}, WithEventBus(bus), WithSink(sink), WithRunID("run-1"), WithEpoch(epoch))

	require.True(t, p.DockShip(2))
	assert.False(t, p.DockShip(3))
	_, err := p.StepUntilShipFull()
	require.NoError(t, err)

	evs := drain(sub)
	require.Len(t, evs, 2)
	docked := events.Meta{RunID: "run-1", Clock: "10:00:00", Hour: 10, Time: epoch}
	assert.Equal(t, events.ShipDockedEvent{Meta: docked, Capacity: 2}, evs[0])
	loaded, ok := evs[1].(events.ShipLoadedEvent)
	require.True(t, ok)
	assert.Equal(t, "run-1", loaded.RunID)
	assert.Equal(t, p.Ticks()-1, loaded.Ticks)
	assert.Equal(t, epoch.Add(time.Duration(loaded.Ticks)*time.Second), loaded.Time)

	require.Len(t, sink.samples, int(p.Ticks()))
	first := sink.samples[0]
	assert.Equal(t, "run-1", first.RunID)
	assert.Equal(t, uint64(1), first.Tick)
	assert.Equal(t, epoch.Add(time.Second), first.Time)
	delivered := 0
	for _, s := range sink.samples {
		delivered += s.Delivered
	}
	assert.Equal(t, 2, delivered)
	last := sink.samples[len(sink.samples)-1]
	assert.InDelta(t, p.TotalCost(), last.TotalCost, 1e-12)
}

func TestDegradationEvent(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sub := bus.Subscribe()
	cfg := DefaultConfig()
	cfg.Start = "10:00"
	cfg.Power.AuxiliaryKW = 1e9
	p := newPlatform(t, cfg, WithEventBus(bus))
	require.True(t, p.DockShip(10))

	r := p.Tick()
	assert.Equal(t, 1.0, r.Fraction)
	assert.True(t, r.Power.Saturated)
	assert.Zero(t, p.Pumps().Active)

	evs := drain(sub)
	require.Len(t, evs, 2)
	deg, ok := evs[1].(events.DegradationEvent)
	require.True(t, ok)
	assert.Equal(t, "saturated", deg.Kind())
	assert.Equal(t, 25, deg.ShedPumps)
	assert.Equal(t, 10, deg.ShedCranes)
}

func TestSinkErrorsDoNotStopTicks(t *testing.T) {
	sink := &captureSink{err: errors.New("down")}
	p := newPlatform(t, Config{}, WithSink(sink))
	p.StepN(3)
	assert.Len(t, sink.samples, 3)
	assert.Equal(t, uint64(3), p.Ticks())
}

func TestHourlyCostMatchesCapacity(t *testing.T) {
	// With coarse one minute ticks the cost of an hour equals the energy drawn.
	p := newPlatform(t, Config{TickSeconds: 60, Start: "00:00"})
	cost := p.StepN(60)
	thermal := (4620 - 3325.0) / 0.95
	assert.InDelta(t, thermal, cost, 1e-6)
	assert.False(t, math.IsNaN(cost))
}

func TestExplicitZeroPowerSettingsKept(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Power.UnitCost = 0
	cfg.Power.Turbines.Count = 0
	p := newPlatform(t, cfg)
	assert.Zero(t, p.Config().Power.UnitCost)
	assert.Zero(t, p.StepN(60))
	assert.Zero(t, p.LastReconciliation().RenewableKW)
}
