package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/offshore/app"
	"github.com/kilianp07/offshore/core/report"
)

var runOpts struct {
	steps         int
	untilShipFull bool
	start         string
	pumps         int
	cranes        int
	ship          int
	emergency     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation in batch and print a summary",
	RunE:  runBatch,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runOpts.steps, "steps", 3600, "number of ticks to simulate")
	f.BoolVar(&runOpts.untilShipFull, "until-ship-full", false, "run until the docked ship is full")
	f.StringVar(&runOpts.start, "start", "", "start clock HH:MM[:SS]")
	f.IntVar(&runOpts.pumps, "pumps", -1, "active pump series")
	f.IntVar(&runOpts.cranes, "cranes", -1, "maximum active cranes")
	f.IntVar(&runOpts.ship, "ship", 0, "dock a ship of this capacity before running (platform.ship_capacity with --until-ship-full)")
	f.BoolVar(&runOpts.emergency, "emergency", false, "engage the pump emergency before running")
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if runOpts.start != "" {
		cfg.Platform.Start = runOpts.start
	}
	svc, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	p := svc.Platform
	if runOpts.pumps >= 0 {
		p.SetActivePumps(runOpts.pumps)
	}
	if runOpts.cranes >= 0 {
		p.SetActiveMaxCranes(runOpts.cranes)
	}
	if runOpts.emergency {
		p.TriggerEmergency()
	}
	ship := runOpts.ship
	if ship == 0 && runOpts.untilShipFull {
		ship = cfg.Platform.ShipCapacity
	}
	if ship > 0 && !p.DockShip(ship) {
		return fmt.Errorf("dock ship of capacity %d failed", ship)
	}

	var runErr error
	if runOpts.untilShipFull {
		_, runErr = p.StepUntilShipFull()
	} else {
		if runOpts.steps < 0 {
			return fmt.Errorf("steps must not be negative, got %d", runOpts.steps)
		}
		p.StepN(runOpts.steps)
	}
	printSummary(cmd.OutOrStdout(), svc)
	if err := svc.Close(); err != nil {
		return err
	}
	return runErr
}

func printSummary(w io.Writer, svc *app.Service) {
	s := svc.Summary()
	p := svc.Platform
	_, _ = fmt.Fprintf(w, "Run: %s\n", p.RunID())
	_, _ = fmt.Fprintf(w, "Clock: %s after %d ticks\n", p.Clock(), s.Ticks)
	_, _ = fmt.Fprintf(w, "Total cost: %s\n", report.Money(s.TotalCost).StringFixed(3))
	_, _ = fmt.Fprintf(w, "Thermal fraction: mean %.4f, stddev %.4f, max %.4f\n",
		s.MeanFraction, s.StdDevFraction, s.MaxFraction)
	_, _ = fmt.Fprintf(w, "Barrels delivered: %d\n", s.Delivered)
	_, _ = fmt.Fprintf(w, "Degraded ticks: %d\n", s.Degradations)
	_, _ = fmt.Fprintf(w, "Pumps: %d/%d, cranes: %d/%d, ship remaining: %d\n",
		p.Pumps().Active, p.Pumps().Total, p.Cranes().Active, p.Cranes().Total, p.Cranes().ShipRemaining)
}
