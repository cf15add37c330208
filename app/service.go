// Package app wires configuration, sinks and the simulated platform together.
package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/offshore/config"
	"github.com/kilianp07/offshore/core/events"
	corejournal "github.com/kilianp07/offshore/core/journal"
	coremetrics "github.com/kilianp07/offshore/core/metrics"
	"github.com/kilianp07/offshore/core/report"
	"github.com/kilianp07/offshore/core/sim"
	infrajournal "github.com/kilianp07/offshore/infra/journal"
	"github.com/kilianp07/offshore/infra/logger"
	"github.com/kilianp07/offshore/infra/metrics"
	"github.com/kilianp07/offshore/infra/mqtt"
	_ "github.com/kilianp07/offshore/infra/nats"
	"github.com/kilianp07/offshore/internal/eventbus"
)

// Service owns a platform and everything observing it.
type Service struct {
	Platform *sim.Platform
	Report   *report.Collector

	sink      *coremetrics.MultiSink
	bus       *eventbus.Bus[events.Event]
	log       logger.Logger
	cancel    context.CancelFunc
	workers   *errgroup.Group
	collector <-chan struct{}
	closed    bool
}

// New creates a Service from the configuration. Extra options are applied to
// the platform after the service's own.
func New(ctx context.Context, cfg *config.Config, opts ...sim.Option) (*Service, error) {
	logg := logger.New("service")
	ctx, cancel := context.WithCancel(ctx)

	sink, err := buildSinks(cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	collector := report.NewCollector()
	sink.Sinks = append(sink.Sinks, collector)

	bus := eventbus.New[events.Event]()
	done := metrics.StartEventCollector(ctx, bus, sink)

	workers, wctx := errgroup.WithContext(ctx)
	if addr := cfg.Metrics.PrometheusAddr; addr != "" {
		workers.Go(func() error {
			if err := metrics.StartPromServer(wctx, addr); err != nil {
				logg.Errorf("prom server: %v", err)
				return fmt.Errorf("prom server: %w", err)
			}
			return nil
		})
	}

	base := []sim.Option{
		sim.WithSink(sink),
		sim.WithEventBus(bus),
		sim.WithLogger(logger.New("platform")),
	}
	platform, err := sim.New(cfg.Platform, append(base, opts...)...)
	if err != nil {
		bus.Close()
		cancel()
		<-done
		return nil, errors.Join(err, workers.Wait(), sink.Close())
	}
	logg.Infof("platform ready: run %s, %d pumps, %d cranes, start %s",
		platform.RunID(), platform.Config().Pumps, platform.Config().Cranes, platform.Clock())
	return &Service{
		Platform:  platform,
		Report:    collector,
		sink:      sink,
		bus:       bus,
		log:       logg,
		cancel:    cancel,
		workers:   workers,
		collector: done,
	}, nil
}

// buildSinks assembles the configured metrics sinks, the journal and MQTT
// telemetry into one fan-out sink.
func buildSinks(cfg *config.Config) (*coremetrics.MultiSink, error) {
	multi := coremetrics.NewMultiSink()
	if len(cfg.Metrics.Sinks) > 0 {
		s, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sinks: %w", err)
		}
		multi.Sinks = append(multi.Sinks, s)
	}
	if cfg.Journal.Enabled {
		j, err := infrajournal.Open(infrajournal.Options{
			Backend:    cfg.Journal.Backend,
			Path:       cfg.Journal.Path,
			MaxSizeMB:  cfg.Journal.MaxSizeMB,
			MaxBackups: cfg.Journal.MaxBackups,
			MaxAgeDays: cfg.Journal.MaxAgeDays,
		})
		if err != nil {
			return nil, errors.Join(fmt.Errorf("journal: %w", err), multi.Close())
		}
		multi.Sinks = append(multi.Sinks, corejournal.NewSink(j, cfg.Journal.SampleEvery))
	}
	if cfg.MQTT != nil {
		t, err := mqtt.NewTelemetrySink(*cfg.MQTT)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("mqtt: %w", err), multi.Close())
		}
		multi.Sinks = append(multi.Sinks, t)
	}
	return multi, nil
}

// Summary returns the report of every tick simulated so far.
func (s *Service) Summary() report.Summary { return s.Report.Summary() }

// Close records the run summary, drains pending events and closes every sink.
func (s *Service) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	sum := s.Report.RunSummary(s.Platform.RunID(), s.Platform.Now())
	err := s.sink.RecordSummary(sum)
	s.log.Infof("run %s finished: %d ticks, cost %s, mean thermal fraction %.3f",
		sum.RunID, sum.Ticks, report.Money(sum.TotalCost), sum.MeanFraction)
	s.bus.Close()
	<-s.collector
	s.cancel()
	werr := s.workers.Wait()
	if dropped := s.bus.Dropped(); dropped > 0 {
		s.log.Warnf("%d events dropped by slow subscribers", dropped)
	}
	return errors.Join(err, werr, s.sink.Close())
}
