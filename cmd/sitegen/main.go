// Command sitegen builds the prospectus site and inspects its datasets from
// the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_prospectus/pkg/core/config"
	"energy_prospectus/pkg/core/dataset"
	"energy_prospectus/pkg/core/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Set up by PersistentPreRunE
	logger *zap.Logger
	cfg    config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Build and inspect the energy project prospectus site",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "site.yaml", "Site configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(facilitiesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRegistry reads the datasets named by the configuration and logs
// validation warnings.
func loadRegistry() (*dataset.Registry, error) {
	reg, err := dataset.LoadDir(cfg.Site.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}
	log := logging.OrNop(logger)
	for _, w := range reg.Report().Warnings() {
		log.Warn("dataset", zap.String("subject", w.Subject), zap.String("issue", w.Message))
	}
	log.Debug("datasets loaded",
		zap.Int("scenarios", len(reg.Scenarios())),
		zap.Int("facilities", len(reg.Facilities())),
		zap.Int("phases", len(reg.Phases())))
	return reg, nil
}
