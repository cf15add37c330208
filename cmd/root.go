package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/offshore/config"
	coremon "github.com/kilianp07/offshore/core/monitoring"
	"github.com/kilianp07/offshore/infra/logger"
	"github.com/kilianp07/offshore/infra/monitoring"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "offshore",
	Short:             "Offshore platform power simulation",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON)")
}

// Execute runs the CLI. Command errors are reported to the configured monitor.
func Execute() error {
	defer coremon.Flush(2 * time.Second)
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		coremon.CaptureException(err, map[string]string{"command": cmd.Name()})
	}
	return err
}

// setup loads the configuration and initialises logging and monitoring.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(c.Logging.Level); err != nil {
		return err
	}
	mon, err := monitoring.NewSentryMonitor(c.Sentry)
	if err != nil {
		logger.New("main").Warnf("sentry disabled: %v", err)
	} else {
		coremon.Init(mon)
	}
	cfg = c
	return nil
}
