// Package sim drives the platform simulation. A Platform owns the pump bank,
// the crane group, the power arbiter and the time of day. Each Tick advances
// the clock, steps the cranes, balances power and integrates the thermal cost.
//
// The simulation is single threaded: callers must not use a Platform from
// several goroutines. Observers receive events through an optional event bus
// and per-tick samples through a metrics sink.
package sim
