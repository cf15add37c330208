// Package journal defines the append-only audit trail of a simulation run.
package journal

import (
	"context"
	"time"
)

// Record kinds.
const (
	KindTick    = "tick"
	KindEvent   = "event"
	KindSummary = "summary"
)

// Record is one journal line. Fields not relevant to Kind are left zero.
type Record struct {
	Kind  string    `json:"kind"`
	RunID string    `json:"run_id"`
	Clock string    `json:"clock"`
	Hour  int       `json:"hour"`
	Time  time.Time `json:"time"`

	Tick          uint64  `json:"tick,omitempty"`
	Fraction      float64 `json:"fraction,omitempty"`
	CostDelta     float64 `json:"cost_delta,omitempty"`
	TotalCost     float64 `json:"total_cost,omitempty"`
	ActivePumps   int     `json:"active_pumps,omitempty"`
	ActiveCranes  int     `json:"active_cranes,omitempty"`
	ShipRemaining int     `json:"ship_remaining,omitempty"`
	Delivered     int     `json:"delivered,omitempty"`

	Event string  `json:"event,omitempty"`
	Level string  `json:"level,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// Query filters journal records. Zero values match everything; FromHour and
// ToHour are inclusive and only apply when ToHour >= FromHour and ToHour > 0.
type Query struct {
	RunID    string
	Kinds    []string
	FromHour int
	ToHour   int
}

// Match reports whether r satisfies q.
func (q Query) Match(r Record) bool {
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if len(q.Kinds) > 0 {
		ok := false
		for _, k := range q.Kinds {
			if k == r.Kind {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if q.ToHour > 0 && q.ToHour >= q.FromHour {
		if r.Hour < q.FromHour || r.Hour > q.ToHour {
			return false
		}
	}
	return true
}

// Journal persists records.
type Journal interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
