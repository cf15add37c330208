package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/offshore/app"
	"github.com/kilianp07/offshore/core/report"
	"github.com/kilianp07/offshore/pkg/chart"
	"github.com/kilianp07/offshore/pkg/export"
)

var costOpts struct {
	days   int
	chart  string
	export string
}

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Compute the daily and monthly cost under ideal conditions",
	Long: "Runs the platform from midnight with a ship of unbounded capacity so " +
		"loading never stops, then prints the daily and 30 day cost.",
	RunE: runCost,
}

func init() {
	f := costCmd.Flags()
	f.IntVar(&costOpts.days, "days", report.MonthDays, "number of simulated days")
	f.StringVar(&costOpts.chart, "chart", "", "write an HTML chart of the hourly profile")
	f.StringVar(&costOpts.export, "export", "", "write the hourly profile as .csv or .json")
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	if costOpts.days < 1 {
		return fmt.Errorf("days must be positive, got %d", costOpts.days)
	}
	cfg.Platform.Start = "00:00:00"
	svc, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	p := svc.Platform
	p.DockShip(math.MaxInt32)
	ticks := costOpts.days * 24 * 3600 / cfg.Platform.TickSeconds
	total := p.StepN(ticks)
	sum := svc.Summary()
	if err := svc.Close(); err != nil {
		return err
	}

	proj := report.Projection(total, costOpts.days)
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, "Ideal conditions (continuous operation):")
	_, _ = fmt.Fprintf(w, "Daily cost: %s\n", proj.Daily.StringFixed(3))
	_, _ = fmt.Fprintf(w, "Monthly cost: %s\n", proj.Monthly.StringFixed(3))

	if costOpts.export != "" {
		if err := writeFile(costOpts.export, func(f *os.File) error {
			return export.Write(f, costOpts.export, sum.Profile())
		}); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	if costOpts.chart != "" {
		title := fmt.Sprintf("Hourly cost over %d days", costOpts.days)
		if err := writeFile(costOpts.chart, func(f *os.File) error {
			return chart.RenderProfile(f, title, sum.Profile())
		}); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
	}
	return nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
