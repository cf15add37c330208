package events

// DegradationEvent is emitted when the arbiter has to shed load. Saturated is
// set when shedding everything still left demand above thermal capacity.
type DegradationEvent struct {
	Meta
	ShedCranes int
	ShedPumps  int
	Saturated  bool
	Fraction   float64
}

func (DegradationEvent) Type() string { return "degradation" }

// Kind returns the most severe degradation level of the event:
// "saturated", "pumps" or "cranes".
func (e DegradationEvent) Kind() string {
	switch {
	case e.Saturated:
		return "saturated"
	case e.ShedPumps > 0:
		return "pumps"
	default:
		return "cranes"
	}
}
