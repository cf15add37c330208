package cranes

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is returned when a group is created with fewer than one crane.
var ErrInvalidCount = errors.New("crane count must be at least 1")

// Group tracks every crane of the platform and the ship they are loading.
type Group struct {
	cfg       Config
	cranes    []Crane
	activeMax int
	active    int
	loading   int
	ship      int
}

// New creates a group of idle cranes, all ready to start seeking a barrel. A
// zero cfg selects DefaultConfig.
func New(total int, cfg Config) (*Group, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, total)
	}
	if cfg.IsZero() {
		cfg = DefaultConfig()
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cs := make([]Crane, total)
	for i := range cs {
		cs[i].Progress = -cfg.SeekTicks
	}
	return &Group{cfg: cfg, cranes: cs, activeMax: total}, nil
}

// SetActiveMax sets the crane budget, clamped to [0, Total].
func (g *Group) SetActiveMax(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(g.cranes) {
		n = len(g.cranes)
	}
	g.activeMax = n
}

// DockShip docks a ship able to take capacity barrels. It fails when another
// ship is still docked or when capacity is not positive.
func (g *Group) DockShip(capacity int) bool {
	if g.ship != 0 || capacity < 1 {
		return false
	}
	g.ship = capacity
	return true
}

// Advance moves every crane forward by one tick at the given hour. It returns
// whether a ship is still docked; a ship filled during this tick is reported
// as gone on the following call.
func (g *Group) Advance(hour int) bool {
	if g.ship == 0 || !g.cfg.Operating(hour) {
		g.deactivateAll()
		return g.ship != 0
	}
	g.elect()
	for i := range g.cranes {
		c := &g.cranes[i]
		if !c.Active {
			continue
		}
		if c.Progress == 0 {
			// Enough barrels already in flight to fill the ship.
			if g.loading >= g.ship {
				c.Active = false
				g.active--
				continue
			}
			g.loading++
		}
		if c.Progress == g.cfg.LoadTicks-1 {
			g.loading--
			g.ship--
			c.Progress = -1 - g.cfg.SeekTicks
		}
		c.Progress++
	}
	return true
}

// Active returns the number of cranes running this cycle.
func (g *Group) Active() int { return g.active }

// ActiveMax returns the crane budget.
func (g *Group) ActiveMax() int { return g.activeMax }

// Total returns the number of cranes.
func (g *Group) Total() int { return len(g.cranes) }

// Loading returns the number of barrels committed but not yet delivered.
func (g *Group) Loading() int { return g.loading }

// ShipRemaining returns the number of barrels the docked ship still accepts,
// zero when no ship is docked.
func (g *Group) ShipRemaining() int { return g.ship }

// Config returns the timings of the group.
func (g *Group) Config() Config { return g.cfg }

// Cranes returns a copy of the crane records in index order.
func (g *Group) Cranes() []Crane {
	out := make([]Crane, len(g.cranes))
	copy(out, g.cranes)
	return out
}

// Status is a read-only view of a group.
type Status struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	ActiveMax     int     `json:"active_max"`
	Loading       int     `json:"loading"`
	ShipRemaining int     `json:"ship_remaining"`
	Cranes        []Crane `json:"cranes"`
}

// Status returns the current group state.
func (g *Group) Status() Status {
	return Status{
		Total:         len(g.cranes),
		Active:        g.active,
		ActiveMax:     g.activeMax,
		Loading:       g.loading,
		ShipRemaining: g.ship,
		Cranes:        g.Cranes(),
	}
}

// Restore rebuilds a group from a previously captured status. The crane
// records are copied and the active count is derived from them.
func Restore(st Status, cfg Config) (*Group, error) {
	g, err := New(len(st.Cranes), cfg)
	if err != nil {
		return nil, err
	}
	copy(g.cranes, st.Cranes)
	for _, c := range g.cranes {
		if c.Active {
			g.active++
		}
	}
	g.SetActiveMax(st.ActiveMax)
	g.loading = st.Loading
	g.ship = st.ShipRemaining
	return g, nil
}
