package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gateflow-sim/gateflow-sim/sim"
)

// yamlConfig mirrors config/default.yaml. All fields must be listed to
// satisfy KnownFields(true) strict parsing — a typo'd key is a fatal
// error, not a silently ignored one.
type yamlConfig struct {
	TotalFans           int     `yaml:"total_fans"`
	NumRuns             int     `yaml:"num_runs"`
	AgentsInspection    int     `yaml:"agents_inspection"`
	PreGameMinutes      int     `yaml:"pre_game_minutes"`
	PeakMinutes         int     `yaml:"peak_minutes"`
	NorthFraction       float64 `yaml:"north_fraction"`
	ReportBinMinutes    int     `yaml:"report_bin_minutes"`
	BinHistogramMinutes int     `yaml:"bin_histogram_minutes"`

	GateCapacity      map[string]int64 `yaml:"gate_capacity"`
	TurnstilesPerGate map[string]int   `yaml:"turnstiles_per_gate"`
	WalkBaseSeconds   struct {
		North map[string]int64 `yaml:"north"`
		South map[string]int64 `yaml:"south"`
	} `yaml:"walk_base_seconds"`

	InspectionMean   float64 `yaml:"inspection_mean"`
	InspectionStdDev float64 `yaml:"inspection_stddev"`
	InspectionFloor  float64 `yaml:"inspection_floor"`

	TurnstileFastMu       float64 `yaml:"turnstile_fast_mu"`
	TurnstileFastSigma    float64 `yaml:"turnstile_fast_sigma"`
	TurnstileProblemProb  float64 `yaml:"turnstile_problem_prob"`
	TurnstileProblemMu    float64 `yaml:"turnstile_problem_mu"`
	TurnstileProblemSigma float64 `yaml:"turnstile_problem_sigma"`
}

// loadConfigFile parses a gateflow-sim YAML config with strict field
// checking: unknown keys are a fatal decode error, not a silent skip.
func loadConfigFile(path string) *sim.Config {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("failed to read config file %s: %v", path, err)
	}

	var y yamlConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&y); err != nil {
		logrus.Fatalf("failed to parse config YAML %s: %v", path, err)
	}

	return y.toConfig()
}

func (y yamlConfig) toConfig() *sim.Config {
	gateCap := make(map[sim.Gate]int64, len(y.GateCapacity))
	for k, v := range y.GateCapacity {
		gateCap[sim.Gate(k)] = v
	}
	turnstiles := make(map[sim.Gate]int, len(y.TurnstilesPerGate))
	for k, v := range y.TurnstilesPerGate {
		turnstiles[sim.Gate(k)] = v
	}
	walk := sim.WalkBaseTable{
		sim.North: make(map[sim.Gate]int64, len(y.WalkBaseSeconds.North)),
		sim.South: make(map[sim.Gate]int64, len(y.WalkBaseSeconds.South)),
	}
	for k, v := range y.WalkBaseSeconds.North {
		walk[sim.North][sim.Gate(k)] = v
	}
	for k, v := range y.WalkBaseSeconds.South {
		walk[sim.South][sim.Gate(k)] = v
	}

	return &sim.Config{
		TotalFans:           y.TotalFans,
		NumRuns:             y.NumRuns,
		AgentsInspection:    y.AgentsInspection,
		PreGameMinutes:      y.PreGameMinutes,
		PeakMinutes:         y.PeakMinutes,
		NorthFraction:       y.NorthFraction,
		ReportBinMinutes:    y.ReportBinMinutes,
		BinHistogramMinutes: y.BinHistogramMinutes,

		GateCapacity:      gateCap,
		TurnstilesPerGate: turnstiles,
		WalkBaseSeconds:   walk,

		InspectionMean:   y.InspectionMean,
		InspectionStdDev: y.InspectionStdDev,
		InspectionFloor:  y.InspectionFloor,

		TurnstileFastMu:       y.TurnstileFastMu,
		TurnstileFastSigma:    y.TurnstileFastSigma,
		TurnstileProblemProb:  y.TurnstileProblemProb,
		TurnstileProblemMu:    y.TurnstileProblemMu,
		TurnstileProblemSigma: y.TurnstileProblemSigma,
	}
}
