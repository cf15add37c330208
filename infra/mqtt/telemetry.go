package mqtt

import (
	"encoding/json"
	"time"

	coremetrics "github.com/kilianp07/offshore/core/metrics"
	coremqtt "github.com/kilianp07/offshore/core/mqtt"
)

// StatePayload is published on <prefix>/state.
type StatePayload struct {
	RunID         string    `json:"run_id"`
	Tick          uint64    `json:"tick"`
	Clock         string    `json:"clock"`
	Fraction      float64   `json:"fraction"`
	TotalCost     float64   `json:"total_cost"`
	ThermalKW     float64   `json:"thermal_kw"`
	RenewableKW   float64   `json:"renewable_kw"`
	ActivePumps   int       `json:"active_pumps"`
	ActiveCranes  int       `json:"active_cranes"`
	ShipRemaining int       `json:"ship_remaining"`
	Degraded      bool      `json:"degraded"`
	Time          time.Time `json:"time"`
}

// EventPayload is published on <prefix>/events/<type>.
type EventPayload struct {
	RunID string    `json:"run_id"`
	Type  string    `json:"type"`
	Kind  string    `json:"kind,omitempty"`
	Clock string    `json:"clock"`
	Value float64   `json:"value"`
	Time  time.Time `json:"time"`
}

// Telemetry is a metrics sink publishing platform state over MQTT.
type Telemetry struct {
	pub    coremqtt.Publisher
	prefix string
	every  uint64
}

// NewTelemetry wraps a publisher. State is published every sampleEvery ticks
// and on every degraded tick.
func NewTelemetry(pub coremqtt.Publisher, prefix string, sampleEvery int) *Telemetry {
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	if prefix == "" {
		prefix = "offshore"
	}
	return &Telemetry{pub: pub, prefix: prefix, every: uint64(sampleEvery)}
}

// NewTelemetrySink connects to the broker described by cfg.
func NewTelemetrySink(cfg Config) (*Telemetry, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cli, err := NewPahoClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewTelemetry(cli, cfg.TopicPrefix, cfg.SampleEvery), nil
}

// RecordTick publishes a sampled state snapshot.
func (t *Telemetry) RecordTick(s coremetrics.TickSample) error {
	if s.Tick%t.every != 0 && !s.Degraded() {
		return nil
	}
	payload, err := json.Marshal(StatePayload{
		RunID:         s.RunID,
		Tick:          s.Tick,
		Clock:         s.Clock,
		Fraction:      s.Fraction,
		TotalCost:     s.TotalCost,
		ThermalKW:     s.ThermalKW,
		RenewableKW:   s.RenewableKW,
		ActivePumps:   s.ActivePumps,
		ActiveCranes:  s.ActiveCranes,
		ShipRemaining: s.ShipRemaining,
		Degraded:      s.Degraded(),
		Time:          s.Time,
	})
	if err != nil {
		return err
	}
	return t.pub.Publish(coremqtt.ClassState, t.prefix+"/state", payload, true)
}

// RecordEvent publishes an event on its type topic.
func (t *Telemetry) RecordEvent(ev coremetrics.EventRecord) error {
	payload, err := json.Marshal(EventPayload{
		RunID: ev.RunID,
		Type:  ev.Type,
		Kind:  ev.Kind,
		Clock: ev.Clock,
		Value: ev.Value,
		Time:  ev.Time,
	})
	if err != nil {
		return err
	}
	return t.pub.Publish(coremqtt.ClassEvents, t.prefix+"/events/"+ev.Type, payload, false)
}

// RecordSummary publishes the run summary as a retained message.
func (t *Telemetry) RecordSummary(s coremetrics.RunSummary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return t.pub.Publish(coremqtt.ClassSummary, t.prefix+"/summary", payload, true)
}

// Close disconnects from the broker.
func (t *Telemetry) Close() error {
	t.pub.Disconnect()
	return nil
}
