package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/offshore/app"
	"github.com/kilianp07/offshore/app/console"
	"github.com/kilianp07/offshore/core/sim"
	"github.com/kilianp07/offshore/infra/logger"
)

var interactiveStart []int

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Drive the platform with one-letter commands",
	Long: "Opens an interactive session. --start H,M sets the start time; " +
		"minutes carry into hours and hours wrap modulo 24.",
	RunE: runInteractive,
}

func init() {
	interactiveCmd.Flags().IntSliceVar(&interactiveStart, "start", nil, "start time as hours,minutes")
	rootCmd.AddCommand(interactiveCmd)
}

// startClock converts the --start values into a clock string.
func startClock(v []int) (string, error) {
	if len(v) != 2 || v[0] < 0 || v[1] < 0 {
		return "", fmt.Errorf("usage: --start hours,minutes with non-negative values")
	}
	return sim.NewClock(v[0], v[1], 0).String(), nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(interactiveStart) > 0 {
		start, err := startClock(interactiveStart)
		if err != nil {
			return err
		}
		cfg.Platform.Start = start
	}
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	svc.Platform.DockShip(cfg.Platform.ShipCapacity)
	c := console.New(svc.Platform, cmd.InOrStdin(), cmd.OutOrStdout(),
		console.WithLogger(logger.New("console")))
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
