package metrics

import "time"

// TickSample is the state of the platform after one simulation tick.
type TickSample struct {
	RunID         string
	Tick          uint64
	Clock         string
	Hour          int
	Fraction      float64
	CostDelta     float64
	TotalCost     float64
	DemandKW      float64
	RenewableKW   float64
	ThermalKW     float64
	ActivePumps   int
	ActiveCranes  int
	ShipRemaining int
	Delivered     int
	ShedCranes    int
	ShedPumps     int
	Saturated     bool
	Time          time.Time
}

// Degraded reports whether the arbiter shed any load during the tick.
func (s TickSample) Degraded() bool {
	return s.ShedCranes > 0 || s.ShedPumps > 0 || s.Saturated
}

// MetricsSink records per-tick platform samples.
type MetricsSink interface {
	RecordTick(s TickSample) error
}

// EventRecord is a flattened platform event.
type EventRecord struct {
	RunID string
	// Type is the event identifier, e.g. "ship_docked" or "degradation".
	Type string
	// Kind refines Type: degradation level or "on"/"off" for emergencies.
	Kind  string
	Clock string
	Hour  int
	Value float64
	Time  time.Time
}

// EventRecorder records discrete platform events.
type EventRecorder interface {
	RecordEvent(ev EventRecord) error
}

// RunSummary describes a finished simulation run.
type RunSummary struct {
	RunID          string
	Ticks          uint64
	TotalCost      float64
	MeanFraction   float64
	StdDevFraction float64
	MaxFraction    float64
	Delivered      int
	Degradations   int
	Time           time.Time
}

// SummaryRecorder records run summaries.
type SummaryRecorder interface {
	RecordSummary(s RunSummary) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordTick(TickSample) error    { return nil }
func (NopSink) RecordEvent(EventRecord) error  { return nil }
func (NopSink) RecordSummary(RunSummary) error { return nil }
