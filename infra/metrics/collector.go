package metrics

import (
	"context"

	"github.com/kilianp07/offshore/core/events"
	coremetrics "github.com/kilianp07/offshore/core/metrics"
	"github.com/kilianp07/offshore/infra/logger"
	"github.com/kilianp07/offshore/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards events to the
// sink when it implements EventRecorder. It stops when the context is canceled
// or the bus is closed; the returned channel is closed once it has stopped.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	rec, ok := sink.(coremetrics.EventRecorder)
	if bus == nil || !ok {
		close(done)
		return done
	}
	log := logger.New("event-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := rec.RecordEvent(coremetrics.FromEvent(ev)); err != nil {
					log.Warnf("record %s event: %v", ev.Type(), err)
				}
			}
		}
	}()
	return done
}
