package journal

import (
	"context"

	"github.com/kilianp07/offshore/core/metrics"
)

// Sink adapts a Journal to the metrics recorder interfaces. Ticks are written
// every sampleEvery ticks and always when the arbiter degraded the tick.
type Sink struct {
	j           Journal
	sampleEvery uint64
}

// NewSink wraps j. A sampleEvery below 1 records every tick.
func NewSink(j Journal, sampleEvery int) *Sink {
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	return &Sink{j: j, sampleEvery: uint64(sampleEvery)}
}

func (s *Sink) RecordTick(t metrics.TickSample) error {
	if t.Tick%s.sampleEvery != 0 && !t.Degraded() {
		return nil
	}
	return s.j.Append(context.Background(), Record{
		Kind:          KindTick,
		RunID:         t.RunID,
		Clock:         t.Clock,
		Hour:          t.Hour,
		Time:          t.Time,
		Tick:          t.Tick,
		Fraction:      t.Fraction,
		CostDelta:     t.CostDelta,
		TotalCost:     t.TotalCost,
		ActivePumps:   t.ActivePumps,
		ActiveCranes:  t.ActiveCranes,
		ShipRemaining: t.ShipRemaining,
		Delivered:     t.Delivered,
	})
}

func (s *Sink) RecordEvent(ev metrics.EventRecord) error {
	return s.j.Append(context.Background(), Record{
		Kind:  KindEvent,
		RunID: ev.RunID,
		Clock: ev.Clock,
		Hour:  ev.Hour,
		Time:  ev.Time,
		Event: ev.Type,
		Level: ev.Kind,
		Value: ev.Value,
	})
}

func (s *Sink) RecordSummary(sum metrics.RunSummary) error {
	return s.j.Append(context.Background(), Record{
		Kind:      KindSummary,
		RunID:     sum.RunID,
		Time:      sum.Time,
		Tick:      sum.Ticks,
		Fraction:  sum.MeanFraction,
		TotalCost: sum.TotalCost,
		Delivered: sum.Delivered,
		Value:     float64(sum.Degradations),
	})
}

// Close closes the underlying journal.
func (s *Sink) Close() error { return s.j.Close() }
