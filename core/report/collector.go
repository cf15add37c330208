// Package report aggregates tick samples into run summaries, hourly cost
// profiles and cost projections.
package report

import (
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/offshore/core/metrics"
)

// Hour aggregates the ticks that fell within one hour of the day.
type Hour struct {
	Hour         int     `json:"hour"`
	Ticks        uint64  `json:"ticks"`
	Cost         float64 `json:"cost"`
	MeanFraction float64 `json:"mean_fraction"`
}

// Summary describes the ticks seen by a Collector.
type Summary struct {
	Ticks          uint64
	TotalCost      float64
	MeanFraction   float64
	StdDevFraction float64
	MaxFraction    float64
	Delivered      int
	Degradations   int
	Hourly         [24]Hour
}

// Collector implements metrics.MetricsSink. Consecutive identical fractions
// are stored once with a weight so month long runs stay small.
type Collector struct {
	mu           sync.Mutex
	values       []float64
	weights      []float64
	ticks        uint64
	cost         float64
	delivered    int
	degradations int
	hourCost     [24]float64
	hourFraction [24]float64
	hourTicks    [24]uint64
}

// NewCollector returns an empty collector.
func NewCollector() *Collector { return &Collector{} }

func (c *Collector) RecordTick(s metrics.TickSample) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.values)
	if n > 0 && c.values[n-1] == s.Fraction {
		c.weights[n-1]++
	} else {
		c.values = append(c.values, s.Fraction)
		c.weights = append(c.weights, 1)
	}
	c.ticks++
	c.cost += s.CostDelta
	c.delivered = s.Delivered
	if s.Degraded() {
		c.degradations++
	}
	h := s.Hour
	if h >= 0 && h < 24 {
		c.hourCost[h] += s.CostDelta
		c.hourFraction[h] += s.Fraction
		c.hourTicks[h]++
	}
	return nil
}

// Summary returns the aggregate of every tick recorded so far.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Summary{
		Ticks:        c.ticks,
		TotalCost:    c.cost,
		Delivered:    c.delivered,
		Degradations: c.degradations,
	}
	if len(c.values) > 0 {
		s.MeanFraction, s.StdDevFraction = stat.MeanStdDev(c.values, c.weights)
		if math.IsNaN(s.StdDevFraction) {
			s.StdDevFraction = 0
		}
		s.MaxFraction = floats.Max(c.values)
	}
	for h := range s.Hourly {
		s.Hourly[h] = Hour{Hour: h, Ticks: c.hourTicks[h], Cost: c.hourCost[h]}
		if c.hourTicks[h] > 0 {
			s.Hourly[h].MeanFraction = c.hourFraction[h] / float64(c.hourTicks[h])
		}
	}
	return s
}

// RunSummary converts the current summary to a metrics.RunSummary.
func (c *Collector) RunSummary(runID string, at time.Time) metrics.RunSummary {
	s := c.Summary()
	return metrics.RunSummary{
		RunID:          runID,
		Ticks:          s.Ticks,
		TotalCost:      s.TotalCost,
		MeanFraction:   s.MeanFraction,
		StdDevFraction: s.StdDevFraction,
		MaxFraction:    s.MaxFraction,
		Delivered:      s.Delivered,
		Degradations:   s.Degradations,
		Time:           at,
	}
}

// Reset discards everything recorded.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values, c.weights = nil, nil
	c.ticks, c.cost = 0, 0
	c.delivered, c.degradations = 0, 0
	c.hourCost = [24]float64{}
	c.hourFraction = [24]float64{}
	c.hourTicks = [24]uint64{}
}

// Profile returns the 24 hourly buckets as a slice.
func (s Summary) Profile() []Hour {
	out := make([]Hour, len(s.Hourly))
	copy(out, s.Hourly[:])
	return out
}
