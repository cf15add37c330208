package metrics

import "github.com/kilianp07/offshore/core/events"

// FromEvent flattens a platform event into an EventRecord. Value carries the
// main quantity of the event: ship capacity, pump count, crane budget or the
// thermal fraction of a degradation.
func FromEvent(e events.Event) EventRecord {
	h := e.Header()
	rec := EventRecord{RunID: h.RunID, Type: e.Type(), Clock: h.Clock, Hour: h.Hour, Time: h.Time}
	switch ev := e.(type) {
	case events.ShipDockedEvent:
		rec.Value = float64(ev.Capacity)
	case events.ShipLoadedEvent:
		rec.Value = float64(ev.Ticks)
	case events.EmergencyEvent:
		rec.Kind = "off"
		if ev.Active {
			rec.Kind = "on"
		}
	case events.DegradationEvent:
		rec.Kind = ev.Kind()
		rec.Value = ev.Fraction
	case events.PumpsChangedEvent:
		rec.Value = float64(ev.Active)
	case events.CraneBudgetEvent:
		rec.Value = float64(ev.ActiveMax)
	}
	return rec
}
