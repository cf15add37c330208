package sim

import (
	"fmt"
	"strconv"
	"strings"
)

const secondsPerDay = 24 * 3600

// Clock is a time of day with one second resolution.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// NewClock builds a clock from possibly out of range fields. Seconds carry into
// minutes, minutes into hours, and hours wrap modulo 24.
func NewClock(hour, minute, second int) Clock {
	var c Clock
	c.set(hour*3600 + minute*60 + second)
	return c
}

// ParseClock reads "HH:MM" or "HH:MM:SS". Fields must be non-negative
// integers; overflowing minutes and seconds carry like NewClock.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("invalid clock %q: want HH:MM or HH:MM:SS", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Clock{}, fmt.Errorf("invalid clock %q: field %q", s, p)
		}
		v[i] = n
	}
	return NewClock(v[0], v[1], v[2]), nil
}

func (c *Clock) set(total int) {
	total %= secondsPerDay
	if total < 0 {
		total += secondsPerDay
	}
	c.Hour = total / 3600
	c.Minute = total / 60 % 60
	c.Second = total % 60
}

// Advance moves the clock forward, wrapping at midnight.
func (c *Clock) Advance(seconds int) { c.set(c.SecondOfDay() + seconds) }

// SecondOfDay returns the seconds elapsed since midnight.
func (c Clock) SecondOfDay() int { return c.Hour*3600 + c.Minute*60 + c.Second }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}
