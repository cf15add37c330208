package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/offshore/core/metrics"
)

// PromSink exposes the platform state as Prometheus metrics.
type PromSink struct {
	cost         prometheus.Counter
	ticks        prometheus.Counter
	delivered    prometheus.Counter
	degradations *prometheus.CounterVec
	events       *prometheus.CounterVec
	fraction     prometheus.Gauge
	pumps        prometheus.Gauge
	cranes       prometheus.Gauge
	ship         prometheus.Gauge
	runCost      prometheus.Gauge
	distribution prometheus.Histogram
}

// NewPromSink registers platform metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Metrics that
// are already registered are reused so several sinks can share a registry.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.cost, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "platform_cost_total",
		Help: "Thermal plant cost accumulated over simulated time",
	})); err != nil {
		return nil, err
	}
	if s.ticks, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "platform_ticks_total",
		Help: "Number of simulation ticks run",
	})); err != nil {
		return nil, err
	}
	if s.delivered, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "platform_barrels_delivered_total",
		Help: "Barrels loaded onto ships",
	})); err != nil {
		return nil, err
	}
	if s.degradations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "platform_degradations_total",
		Help: "Ticks during which load was shed, by kind",
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if s.events, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "platform_events_total",
		Help: "Platform events by type",
	}, []string{"type"})); err != nil {
		return nil, err
	}
	if s.fraction, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "platform_thermal_fraction",
		Help: "Fraction of thermal capacity drawn during the last tick",
	})); err != nil {
		return nil, err
	}
	if s.pumps, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "platform_active_pumps",
		Help: "Pump series running",
	})); err != nil {
		return nil, err
	}
	if s.cranes, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "platform_active_cranes",
		Help: "Cranes running",
	})); err != nil {
		return nil, err
	}
	if s.ship, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "platform_ship_remaining",
		Help: "Barrels the docked ship still accepts",
	})); err != nil {
		return nil, err
	}
	if s.runCost, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "platform_run_cost",
		Help: "Total cost of the last finished run",
	})); err != nil {
		return nil, err
	}
	if s.distribution, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "platform_thermal_fraction_distribution",
		Help:    "Distribution of the thermal fraction across ticks",
		Buckets: prometheus.LinearBuckets(0.05, 0.05, 20),
	})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordTick updates counters and gauges from a tick sample.
func (s *PromSink) RecordTick(ts coremetrics.TickSample) error {
	s.ticks.Inc()
	s.cost.Add(ts.CostDelta)
	if ts.Delivered > 0 {
		s.delivered.Add(float64(ts.Delivered))
	}
	if ts.ShedCranes > 0 {
		s.degradations.WithLabelValues("cranes").Inc()
	}
	if ts.ShedPumps > 0 {
		s.degradations.WithLabelValues("pumps").Inc()
	}
	if ts.Saturated {
		s.degradations.WithLabelValues("saturated").Inc()
	}
	s.fraction.Set(ts.Fraction)
	s.pumps.Set(float64(ts.ActivePumps))
	s.cranes.Set(float64(ts.ActiveCranes))
	s.ship.Set(float64(ts.ShipRemaining))
	s.distribution.Observe(ts.Fraction)
	return nil
}

// RecordEvent counts platform events by type.
func (s *PromSink) RecordEvent(ev coremetrics.EventRecord) error {
	s.events.WithLabelValues(ev.Type).Inc()
	return nil
}

// RecordSummary publishes the total cost of a finished run.
func (s *PromSink) RecordSummary(sum coremetrics.RunSummary) error {
	s.runCost.Set(sum.TotalCost)
	return nil
}
