package pumps

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is returned when a bank is created with fewer than one series.
var ErrInvalidCount = errors.New("pump count must be at least 1")

// Bank tracks how many pump series are running.
type Bank struct {
	total     int
	active    int
	emergency bool
}

// New creates a bank with every series active.
func New(total int) (*Bank, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, total)
	}
	return &Bank{total: total, active: total}, nil
}

// SetActive changes the number of running series. Out of range values are
// clamped to [0, Total]. The call is ignored while the emergency lockout is set.
func (b *Bank) SetActive(n int) {
	if b.emergency {
		return
	}
	if n < 0 {
		n = 0
	}
	if n > b.total {
		n = b.total
	}
	b.active = n
}

// TriggerEmergency stops every series and engages the lockout.
func (b *Bank) TriggerEmergency() {
	b.SetActive(0)
	b.emergency = true
}

// ClearEmergency releases the lockout. Series stay stopped until SetActive is
// called again.
func (b *Bank) ClearEmergency() { b.emergency = false }

// Active returns the number of running series.
func (b *Bank) Active() int { return b.active }

// Total returns the number of series in the bank.
func (b *Bank) Total() int { return b.total }

// Emergency reports whether the lockout is engaged.
func (b *Bank) Emergency() bool { return b.emergency }

// Running reports whether the series at index i is on.
func (b *Bank) Running(i int) bool { return i >= 0 && i < b.active }

// YellowLight is the "pumps operating" indicator.
func (b *Bank) YellowLight() bool { return b.active > 0 }

// RedLight is the emergency indicator.
func (b *Bank) RedLight() bool { return b.emergency }

// Status is a read-only view of a bank.
type Status struct {
	Total     int  `json:"total"`
	Active    int  `json:"active"`
	Emergency bool `json:"emergency"`
}

// Status returns the current bank state.
func (b *Bank) Status() Status {
	return Status{Total: b.total, Active: b.active, Emergency: b.emergency}
}

// Restore rebuilds a bank from a previously captured status.
func Restore(st Status) (*Bank, error) {
	b, err := New(st.Total)
	if err != nil {
		return nil, err
	}
	b.SetActive(st.Active)
	b.emergency = st.Emergency
	return b, nil
}

// YellowLight is the "pumps operating" indicator.
func (s Status) YellowLight() bool { return s.Active > 0 }

// RedLight is the emergency indicator.
func (s Status) RedLight() bool { return s.Emergency }
