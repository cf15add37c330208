package events

// EmergencyEvent is published when the pump emergency lockout changes.
type EmergencyEvent struct {
	Meta
	Active bool
}

func (EmergencyEvent) Type() string { return "emergency" }

// PumpsChangedEvent records an operator request and the count actually applied.
type PumpsChangedEvent struct {
	Meta
	Requested int
	Active    int
}

func (PumpsChangedEvent) Type() string { return "pumps_changed" }

// CraneBudgetEvent is emitted when the crane budget changes.
type CraneBudgetEvent struct {
	Meta
	ActiveMax int
}

func (CraneBudgetEvent) Type() string { return "crane_budget" }
