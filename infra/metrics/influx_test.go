package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	coremetrics "github.com/kilianp07/offshore/core/metrics"
)

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		r.mu.Lock()
		r.lines = append(r.lines, strings.TrimSpace(string(data)))
		r.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (r *lineRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func TestInfluxSink_RecordTickSampling(t *testing.T) {
	rec := &lineRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket", SampleEvery: 10})
	defer sink.Close()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := uint64(1); i <= 20; i++ {
		ts := coremetrics.TickSample{RunID: "r1", Tick: i, Fraction: 0.12345, ActivePumps: 25, Time: now.Add(time.Duration(i) * time.Second)}
		if i == 3 {
			ts.ShedCranes = 2
		}
		if err := sink.RecordTick(ts); err != nil {
			t.Fatalf("record error: %v", err)
		}
	}
	lines := rec.all()
	if len(lines) != 3 {
		t.Fatalf("expected ticks 3, 10 and 20 to be written, got %d: %v", len(lines), lines)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "platform_tick,run_id=r1 ") {
			t.Fatalf("unexpected line %s", l)
		}
		if !strings.Contains(l, "fraction=0.123") || !strings.Contains(l, "active_pumps=25i") {
			t.Fatalf("missing fields in %s", l)
		}
	}
	if !strings.Contains(lines[0], "shed_cranes=2i") {
		t.Fatalf("degraded tick should be written first: %s", lines[0])
	}
}

func TestInfluxSink_RecordEventAndSummary(t *testing.T) {
	rec := &lineRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()
	now := time.Now()
	if err := sink.RecordEvent(coremetrics.EventRecord{RunID: "r1", Type: "emergency", Kind: "on", Clock: "10:00:00", Hour: 10, Time: now}); err != nil {
		t.Fatalf("event: %v", err)
	}
	if err := sink.RecordSummary(coremetrics.RunSummary{RunID: "r1", Ticks: 86400, TotalCost: 99.9994, Time: now}); err != nil {
		t.Fatalf("summary: %v", err)
	}
	lines := rec.all()
	if len(lines) != 2 {
		t.Fatalf("expected 2 writes, got %v", lines)
	}
	if !strings.HasPrefix(lines[0], "platform_event,kind=on,run_id=r1,type=emergency ") &&
		!strings.HasPrefix(lines[0], "platform_event,run_id=r1,type=emergency,kind=on ") {
		t.Fatalf("unexpected event line %s", lines[0])
	}
	if !strings.Contains(lines[0], `clock="10:00:00"`) {
		t.Fatalf("missing clock field in %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "platform_run_summary,run_id=r1 ") || !strings.Contains(lines[1], "ticks=86400i") || !strings.Contains(lines[1], "total_cost=99.999") {
		t.Fatalf("unexpected summary line %s", lines[1])
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
