package metrics

import "errors"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordTick forwards the sample to all sinks. Every sink is called even when
// an earlier one fails; the errors are joined.
func (m *MultiSink) RecordTick(s TickSample) error {
	var errs []error
	for _, sink := range m.Sinks {
		if err := sink.RecordTick(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordEvent forwards events to the sinks implementing EventRecorder.
func (m *MultiSink) RecordEvent(ev EventRecord) error {
	var errs []error
	for _, sink := range m.Sinks {
		if rec, ok := sink.(EventRecorder); ok {
			if err := rec.RecordEvent(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordSummary forwards the summary to the sinks implementing SummaryRecorder.
func (m *MultiSink) RecordSummary(s RunSummary) error {
	var errs []error
	for _, sink := range m.Sinks {
		if rec, ok := sink.(SummaryRecorder); ok {
			if err := rec.RecordSummary(s); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, sink := range m.Sinks {
		if c, ok := sink.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
