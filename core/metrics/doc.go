// Package metrics defines the interfaces used to observe a simulation run.
// Sinks receive a TickSample after every tick and may also implement
// EventRecorder and SummaryRecorder. Several sinks can be combined with
// NewMultiSink; the factory helpers return a MultiSink automatically when
// multiple sinks are configured. Concrete sinks live in infra/metrics and
// infra/mqtt and register themselves on import.
package metrics
