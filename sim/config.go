package sim

import (
	"fmt"
	"math"
)

// WalkBaseTable maps esplanade -> gate -> base walk seconds.
type WalkBaseTable map[Esplanade]map[Gate]int64

// Config is the fixed set of scalars and tables consumed at startup.
// Values are populated from YAML (see cmd/config.go) or flags.
type Config struct {
	TotalFans        int
	NumRuns          int
	AgentsInspection int
	PreGameMinutes   int
	PeakMinutes      int // reserved for future arrival shapes; not validated and not read by the simulation
	NorthFraction    float64

	// ReportBinMinutes is the per-run report's temporal-histogram
	// resolution (default 10 minutes); BinHistogramMinutes is the
	// separate, finer resolution used only for the plotter hand-off
	// (default 5 minutes). The two are never the same field.
	ReportBinMinutes    int
	BinHistogramMinutes int

	GateCapacity      map[Gate]int64
	TurnstilesPerGate map[Gate]int
	WalkBaseSeconds   WalkBaseTable

	InspectionMean, InspectionStdDev, InspectionFloor float64
	TurnstileFastMu, TurnstileFastSigma               float64
	TurnstileProblemProb                              float64
	TurnstileProblemMu, TurnstileProblemSigma         float64
}

// ValidationError reports a fatal configuration problem caught at startup,
// as distinct from a mid-run invariant violation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks the startup configuration errors: TOTAL_FANS exceeding
// total gate capacity, a gate referenced by the capacity table missing
// from the turnstile table (or vice versa), and non-positive
// agent/turnstile counts.
func (c *Config) Validate() error {
	if c.AgentsInspection <= 0 {
		return &ValidationError{Msg: fmt.Sprintf("AGENTS_INSPECTION must be positive, got %d", c.AgentsInspection)}
	}
	if c.NumRuns <= 0 {
		return &ValidationError{Msg: fmt.Sprintf("NUM_RUNS must be >= 1, got %d", c.NumRuns)}
	}
	if c.TotalFans <= 0 {
		return &ValidationError{Msg: fmt.Sprintf("TOTAL_FANS must be positive, got %d", c.TotalFans)}
	}
	if c.NorthFraction < 0 || c.NorthFraction > 1 {
		return &ValidationError{Msg: fmt.Sprintf("NORTH_FRACTION must be in [0,1], got %v", c.NorthFraction)}
	}

	var totalCapacity int64
	for g, capacity := range c.GateCapacity {
		if capacity <= 0 {
			return &ValidationError{Msg: fmt.Sprintf("gate %s has non-positive capacity %d", g, capacity)}
		}
		totalCapacity += capacity
		n, ok := c.TurnstilesPerGate[g]
		if !ok {
			return &ValidationError{Msg: fmt.Sprintf("gate %s has capacity but no turnstile count", g)}
		}
		if n <= 0 {
			return &ValidationError{Msg: fmt.Sprintf("gate %s has non-positive turnstile count %d", g, n)}
		}
	}
	for g := range c.TurnstilesPerGate {
		if _, ok := c.GateCapacity[g]; !ok {
			return &ValidationError{Msg: fmt.Sprintf("gate %s has turnstiles but no configured capacity", g)}
		}
	}
	if int64(c.TotalFans) > totalCapacity {
		return &ValidationError{Msg: fmt.Sprintf("TOTAL_FANS (%d) exceeds total gate capacity (%d)", c.TotalFans, totalCapacity)}
	}

	for esp, table := range c.WalkBaseSeconds {
		for g, base := range table {
			if base < 0 {
				return &ValidationError{Msg: fmt.Sprintf("walk_base_seconds[%s][%s] must be non-negative, got %d", esp, g, base)}
			}
		}
	}

	return nil
}

// TotalGateCapacity sums the configured per-gate capacities.
func (c *Config) TotalGateCapacity() int64 {
	var total int64
	for _, capacity := range c.GateCapacity {
		total += capacity
	}
	return total
}

// DefaultConfig returns the bundled default configuration: the Mineirão
// stadium's gate layout and the stock distribution parameters.
func DefaultConfig() *Config {
	return &Config{
		TotalFans:           50000,
		NumRuns:             1,
		AgentsInspection:    200,
		PreGameMinutes:      180,
		PeakMinutes:         60,
		NorthFraction:       0.5,
		ReportBinMinutes:    10,
		BinHistogramMinutes: 5,

		GateCapacity: map[Gate]int64{
			GateA: 9983, GateB: 4114, GateC: 15574,
			GateD: 10945, GateE: 5399, GateF: 15567,
		},
		TurnstilesPerGate: map[Gate]int{
			GateA: 19, GateB: 14, GateC: 30,
			GateD: 22, GateE: 13, GateF: 30,
		},
		WalkBaseSeconds: WalkBaseTable{
			North: {GateF: 60, GateA: 90, GateE: 120, GateB: 150, GateD: 180, GateC: 240},
			South: {GateC: 60, GateD: 90, GateB: 120, GateE: 150, GateA: 180, GateF: 240},
		},

		InspectionMean: 20, InspectionStdDev: 5, InspectionFloor: 5,
		TurnstileFastMu: math.Log(10), TurnstileFastSigma: 0.3,
		TurnstileProblemProb: 0.15,
		TurnstileProblemMu:   math.Log(20), TurnstileProblemSigma: 0.4,
	}
}
