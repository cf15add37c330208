package events

// ShipDockedEvent is published when a ship docks at the platform.
type ShipDockedEvent struct {
	Meta
	Capacity int
}

func (ShipDockedEvent) Type() string { return "ship_docked" }

// ShipLoadedEvent is published on the tick the docked ship takes its last barrel.
type ShipLoadedEvent struct {
	Meta
	Ticks uint64
}

func (ShipLoadedEvent) Type() string { return "ship_loaded" }
