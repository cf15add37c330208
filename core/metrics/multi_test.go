package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	ticks, events, summaries int
	err                      error
}

func (r *recordSink) RecordTick(TickSample) error {
	r.ticks++
	return r.err
}

func (r *recordSink) RecordEvent(EventRecord) error {
	r.events++
	return r.err
}

type tickOnly struct{ ticks int }

func (s *tickOnly) RecordTick(TickSample) error {
	s.ticks++
	return nil
}

// TestMultiSink ensures records are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &tickOnly{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordTick(TickSample{}); err != nil {
		t.Fatalf("record tick: %v", err)
	}
	if err := m.RecordEvent(EventRecord{Type: "ship_docked"}); err != nil {
		t.Fatalf("record event: %v", err)
	}
	if err := m.RecordSummary(RunSummary{}); err != nil {
		t.Fatalf("record summary: %v", err)
	}
	if s1.ticks != 1 || s1.events != 1 || s2.ticks != 1 {
		t.Fatalf("records not forwarded: %+v %+v", s1, s2)
	}
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := &recordSink{err: boom}
	ok := &tickOnly{}
	m := NewMultiSink(failing, ok)
	err := m.RecordTick(TickSample{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if ok.ticks != 1 {
		t.Fatalf("second sink must still be called")
	}
}

func TestTickSampleDegraded(t *testing.T) {
	if (TickSample{}).Degraded() {
		t.Fatalf("zero sample is not degraded")
	}
	if !(TickSample{ShedPumps: 1}).Degraded() || !(TickSample{Saturated: true}).Degraded() {
		t.Fatalf("expected degraded samples")
	}
}
