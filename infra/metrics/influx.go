package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/offshore/core/metrics"
	"github.com/kilianp07/offshore/infra/logger"
)

// InfluxConfig configures the InfluxDB sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
	// SampleEvery writes one tick point out of N. Degraded ticks are always written.
	SampleEvery int `json:"sample_every"`
}

// InfluxSink writes platform samples to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	every    uint64
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	every := uint64(1)
	if cfg.SampleEvery > 1 {
		every = uint64(cfg.SampleEvery)
	}
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		every:    every,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordTick writes a platform_tick point for sampled or degraded ticks.
func (s *InfluxSink) RecordTick(ts coremetrics.TickSample) error {
	if ts.Tick%s.every != 0 && !ts.Degraded() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("platform_tick").
		AddTag("run_id", ts.RunID).
		AddField("fraction", round3(ts.Fraction)).
		AddField("cost", round3(ts.CostDelta)).
		AddField("total_cost", round3(ts.TotalCost)).
		AddField("demand_kw", round3(ts.DemandKW)).
		AddField("renewable_kw", round3(ts.RenewableKW)).
		AddField("thermal_kw", round3(ts.ThermalKW)).
		AddField("active_pumps", ts.ActivePumps).
		AddField("active_cranes", ts.ActiveCranes).
		AddField("ship_remaining", ts.ShipRemaining).
		AddField("shed_cranes", ts.ShedCranes).
		AddField("shed_pumps", ts.ShedPumps).
		AddField("saturated", ts.Saturated).
		SetTime(ts.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordEvent writes a platform_event point.
func (s *InfluxSink) RecordEvent(ev coremetrics.EventRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("platform_event").
		AddTag("run_id", ev.RunID).
		AddTag("type", ev.Type)
	if ev.Kind != "" {
		p = p.AddTag("kind", ev.Kind)
	}
	p = p.AddField("value", round3(ev.Value)).
		AddField("hour", ev.Hour).
		AddField("clock", ev.Clock).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSummary writes a platform_run_summary point.
func (s *InfluxSink) RecordSummary(sum coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("platform_run_summary").
		AddTag("run_id", sum.RunID).
		AddField("ticks", int64(sum.Ticks)).
		AddField("total_cost", round3(sum.TotalCost)).
		AddField("mean_fraction", round3(sum.MeanFraction)).
		AddField("stddev_fraction", round3(sum.StdDevFraction)).
		AddField("max_fraction", round3(sum.MaxFraction)).
		AddField("delivered", sum.Delivered).
		AddField("degradations", sum.Degradations).
		SetTime(sum.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
