// cmd/root.go
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gateflow-sim/gateflow-sim/sim"
)

var (
	configFile          string
	logLevel            string
	seed                int64
	totalFans           int
	numRuns             int
	agentsInspection    int
	preGameMinutes      int
	peakMinutes         int
	northFraction       float64
	reportBinMinutes    int
	binHistogramMinutes int
	histogramOut        string
)

var rootCmd = &cobra.Command{
	Use:   "gateflow-sim",
	Short: "Discrete-event simulator for stadium gate ingress",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingress simulation and print a report",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := resolveConfig(cmd)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("invalid configuration: %v", err)
		}

		logrus.Infof("starting simulation: total_fans=%d num_runs=%d agents_inspection=%d seed=%d",
			cfg.TotalFans, cfg.NumRuns, cfg.AgentsInspection, seed)

		result := sim.NewRunAggregator(cfg, seed).Run()
		sim.PrintReport(result)
		logrus.Info("simulation complete")
	},
}

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Run the simulation and emit a cross-run arrival histogram as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := resolveConfig(cmd)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("invalid configuration: %v", err)
		}

		result := sim.NewRunAggregator(cfg, seed).Run()
		runs := make([][]*sim.Fan, len(result.Runs))
		for i, r := range result.Runs {
			runs[i] = r.Fans
		}
		hist := sim.BuildPlotHistogram(runs, cfg.BinHistogramMinutes)

		out := os.Stdout
		if histogramOut != "" {
			f, err := os.Create(histogramOut)
			if err != nil {
				logrus.Fatalf("failed to create output file %s: %v", histogramOut, err)
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(hist); err != nil {
			logrus.Fatalf("failed to encode histogram: %v", err)
		}
	},
}

// resolveConfig loads the --config file, or sim.DefaultConfig() (the same
// values as config/default.yaml) when none is given, then overrides any
// field the caller explicitly set on the command line.
func resolveConfig(cmd *cobra.Command) *sim.Config {
	var cfg *sim.Config
	if configFile != "" {
		cfg = loadConfigFile(configFile)
	} else {
		cfg = sim.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("total-fans") {
		cfg.TotalFans = totalFans
	}
	if flags.Changed("runs") {
		cfg.NumRuns = numRuns
	}
	if flags.Changed("agents") {
		cfg.AgentsInspection = agentsInspection
	}
	if flags.Changed("pre-game") {
		cfg.PreGameMinutes = preGameMinutes
	}
	if flags.Changed("peak-minutes") {
		cfg.PeakMinutes = peakMinutes
	}
	if flags.Changed("north-fraction") {
		cfg.NorthFraction = northFraction
	}
	if flags.Changed("report-bin-minutes") {
		cfg.ReportBinMinutes = reportBinMinutes
	}
	if flags.Changed("bin-minutes") {
		cfg.BinHistogramMinutes = binHistogramMinutes
	}
	return cfg
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (defaults to the bundled Mineirão config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master RNG seed")

	for _, c := range []*cobra.Command{runCmd, histogramCmd} {
		c.Flags().IntVar(&totalFans, "total-fans", 0, "Total number of fans to simulate")
		c.Flags().IntVar(&numRuns, "runs", 0, "Number of independent runs to aggregate")
		c.Flags().IntVar(&agentsInspection, "agents", 0, "Number of inspection agents")
		c.Flags().IntVar(&preGameMinutes, "pre-game", 0, "Minutes before kickoff the gates open")
		c.Flags().IntVar(&peakMinutes, "peak-minutes", 0, "Reserved; stored in the config but not used by arrival sampling")
		c.Flags().Float64Var(&northFraction, "north-fraction", 0, "Fraction of fans entering from the north esplanade")
		c.Flags().IntVar(&reportBinMinutes, "report-bin-minutes", 0, "Width in minutes of the per-run report's temporal histogram bins")
		c.Flags().IntVar(&binHistogramMinutes, "bin-minutes", 0, "Width in minutes of the C13 plot hand-off's histogram bins")
	}
	histogramCmd.Flags().StringVar(&histogramOut, "out", "", "Write the histogram JSON to this file instead of stdout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(histogramCmd)
}
