package console

import (
	"fmt"
	"strings"

	"github.com/kilianp07/offshore/core/cranes"
	"github.com/kilianp07/offshore/core/pumps"
)

// Help lists the interactive commands.
const Help = `Commands that ADVANCE the simulation print the cost of the advance, the
total cost since the start and a summary of the platform.
COMMANDS:
b : show the pump system.
B : change the number of active pumps.
e : engage the pump emergency.
E : clear the pump emergency.
g : show the crane system.
G : change the maximum number of active cranes.
h : show this help.
n : dock a ship.
N : ADVANCE until the docked ship is full.
p : ADVANCE one step.
P : ADVANCE a number of steps (up to one day).
t : toggle the per-step thermal plant demand.
f : forecast the cost of a number of steps without advancing.
q : quit.
`

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// PumpsStatus renders the pump bank and its indicator lights.
func PumpsStatus(st pumps.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total pumps: %d\n", st.Total)
	fmt.Fprintf(&b, "Active pumps: %d\n", st.Active)
	fmt.Fprintf(&b, "Emergency: %s\n", onOff(st.Emergency))
	fmt.Fprintf(&b, "Yellow light: %s\n", onOff(st.YellowLight()))
	fmt.Fprintf(&b, "Red light: %s\n", onOff(st.RedLight()))
	return b.String()
}

// CranesStatus renders the crane group with one line per crane.
func CranesStatus(st cranes.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total cranes: %d\n", st.Total)
	fmt.Fprintf(&b, "Active cranes: %d\n", st.Active)
	fmt.Fprintf(&b, "Active cranes (max): %d\n", st.ActiveMax)
	fmt.Fprintf(&b, "Loading cranes: %d\n", st.Loading)
	b.WriteString("  Cranes: state (progress)\n")
	for i, c := range st.Cranes {
		state := "INACTIVE"
		if c.Active {
			state = "ACTIVE"
		}
		fmt.Fprintf(&b, "  | Crane %02d: %s %s (%02d)\n", i+1, state, c.State(), c.Progress)
	}
	fmt.Fprintf(&b, "Ship: %d\n", st.ShipRemaining)
	return b.String()
}
