package cranes

// State is the lifecycle phase of a crane.
type State int

const (
	Idle State = iota
	Seeking
	Loading
)

func (s State) String() string {
	switch s {
	case Seeking:
		return "seeking"
	case Loading:
		return "loading"
	default:
		return "idle"
	}
}

// Crane is the record kept for a single crane. The phase is derived from the
// sign of Progress so the two can never disagree.
type Crane struct {
	Active   bool `json:"active"`
	Progress int  `json:"progress"`
}

// State returns Idle for cranes not selected this cycle, otherwise Seeking for
// negative progress and Loading for the rest.
func (c Crane) State() State {
	switch {
	case !c.Active:
		return Idle
	case c.Progress < 0:
		return Seeking
	default:
		return Loading
	}
}
