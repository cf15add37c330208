// Package console implements the interactive one-letter command session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/kilianp07/offshore/core/logger"
	"github.com/kilianp07/offshore/core/monitoring"
	"github.com/kilianp07/offshore/core/report"
	"github.com/kilianp07/offshore/core/sim"
)

const secondsPerDay = 24 * 60 * 60

// Console reads commands from in and drives a platform.
type Console struct {
	p            *sim.Platform
	in           *bufio.Scanner
	out          io.Writer
	pending      string
	shipCapacity int
	showFraction bool
	log          logger.Logger
}

// Option customises a Console.
type Option func(*Console)

// WithLogger routes command failures to l.
func WithLogger(l logger.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

// WithShipCapacity sets the capacity of ships docked with "n".
func WithShipCapacity(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.shipCapacity = n
		}
	}
}

// New returns a console bound to p.
func New(p *sim.Platform, in io.Reader, out io.Writer, opts ...Option) *Console {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	c := &Console{
		p:            p,
		in:           sc,
		out:          out,
		shipCapacity: p.Config().ShipCapacity,
		log:          logger.NopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run processes commands until "q", the end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.printf("----- INTERACTIVE MODE -----\n")
	c.printf("Type 'h' for help\n")
	c.printf("----------------------------\n\n")
	for {
		c.summary()
		quit, err := c.command(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil || quit {
			return err
		}
		c.printf("Total cost: %s\n\n", money(c.p.TotalCost()))
	}
}

// command reads commands until one advances or changes the platform enough
// to warrant a new summary.
//
//gocyclo:ignore
func (c *Console) command(ctx context.Context) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		c.printf("-> ")
		cmd, err := c.readCommand()
		if err != nil {
			return true, err
		}
		switch cmd {
		case 'P':
			n, err := c.readNum(0, c.ticksPerDay())
			if err != nil {
				return true, err
			}
			c.advance(n)
		case 'p':
			c.advance(1)
		case 'E':
			c.p.ClearEmergency()
		case 'e':
			c.p.TriggerEmergency()
		case 'G':
			n, err := c.readNum(0, c.p.Cranes().Total)
			if err != nil {
				return true, err
			}
			c.p.SetActiveMaxCranes(n)
			continue
		case 'g':
			c.printf("%s", CranesStatus(c.p.Cranes()))
			continue
		case 'B':
			n, err := c.readNum(0, c.p.Pumps().Total)
			if err != nil {
				return true, err
			}
			if got := c.p.SetActivePumps(n); got != n {
				c.printf("Pump emergency active, %d pumps running.\n", got)
			}
			continue
		case 'b':
			c.printf("%s", PumpsStatus(c.p.Pumps()))
			continue
		case 'N':
			c.untilShipFull()
		case 'n':
			if c.p.DockShip(c.shipCapacity) {
				c.printf("Ship docked.\n")
				c.printf("Ship capacity: %d barrels\n", c.p.Cranes().ShipRemaining)
			} else {
				c.printf("A ship is already docked.\n")
			}
			continue
		case 'T', 't':
			c.showFraction = !c.showFraction
			if c.showFraction {
				c.printf("Thermal plant demand will be shown.\n")
			} else {
				c.printf("Thermal plant demand will not be shown.\n")
			}
			continue
		case 'F', 'f':
			n, err := c.readNum(1, 30*c.ticksPerDay())
			if err != nil {
				return true, err
			}
			cost, err := c.p.Forecast(n)
			if err != nil {
				c.log.Errorf("forecast: %v", err)
				c.printf("Forecast failed: %v\n", err)
				continue
			}
			c.printf("Forecast for %d steps: %s\n", n, money(cost))
			continue
		case 'H', 'h':
			c.printf("%s", Help)
			continue
		case 'Q', 'q':
			return true, nil
		default:
			c.printf("Invalid command.\n")
			continue
		}
		return false, nil
	}
}

func (c *Console) advance(n int) {
	var cost float64
	if c.showFraction {
		for i := 0; i < n; i++ {
			cost += c.tick().CostDelta
		}
	} else {
		cost = c.p.StepN(n)
	}
	c.printf("\nCost: %s\n", money(cost))
}

func (c *Console) untilShipFull() {
	var (
		cost float64
		err  error
	)
	if c.showFraction {
		cost, err = c.tickUntilShipFull()
	} else {
		cost, err = c.p.StepUntilShipFull()
	}
	c.printf("\nCost: %s\n", money(cost))
	if err != nil {
		c.log.Warnf("run until ship full: %v", err)
		monitoring.CaptureException(err, map[string]string{"command": "N"})
		c.printf("%v\n", err)
	}
}

func (c *Console) tickUntilShipFull() (float64, error) {
	if c.p.Cranes().ShipRemaining == 0 {
		return 0, nil
	}
	var cost float64
	limit := c.p.Config().MaxShipTicks
	for i := 0; i < limit; i++ {
		r := c.tick()
		cost += r.CostDelta
		if !r.ShipPresent {
			return cost, nil
		}
	}
	return cost, c.p.ShipStalled(limit)
}

func (c *Console) tick() sim.TickResult {
	r := c.p.Tick()
	c.printf("\n(%s) %.2f %%", r.Clock, r.Fraction*100)
	return r
}

func (c *Console) summary() {
	st := c.p.Snapshot()
	c.printf("Time: %s\n", st.Clock)
	c.printf("Active pumps: %d of %d\n", st.Pumps.Active, st.Pumps.Total)
	c.printf("Active cranes: %d of %d\n", st.Cranes.Active, st.Cranes.Total)
	c.printf("Ship capacity: %d barrels\n", st.Cranes.ShipRemaining)
}

func (c *Console) ticksPerDay() int { return secondsPerDay / c.p.Config().TickSeconds }

func (c *Console) next() (string, error) {
	if c.pending != "" {
		tok := c.pending
		c.pending = ""
		return tok, nil
	}
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// readCommand returns the first character of the next token. The rest of the
// token is kept for the following read so "P5" works like "P 5".
func (c *Console) readCommand() (rune, error) {
	tok, err := c.next()
	if err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRuneInString(tok)
	c.pending = tok[size:]
	return r, nil
}

// readNum asks for an integer in [lo, hi] until one is given.
func (c *Console) readNum(lo, hi int) (int, error) {
	c.printf("Enter a number between %d and %d:\n", lo, hi)
	for {
		c.printf("-> ")
		tok, err := c.next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(tok)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func money(v float64) string { return report.Money(v).StringFixed(3) }
