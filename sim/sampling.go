package sim

import (
	"math"
	"math/rand"
)

// InspectionSampler draws pat-down service durations from a Normal
// distribution clamped at a lower floor, so a deep-left-tail draw never
// produces an implausibly short (or negative) pat-down.
type InspectionSampler struct {
	Mean, StdDev float64
	Floor        float64
}

// NewInspectionSampler creates a sampler; the bundled defaults are
// mean=20s, stddev=5s, floor=5s.
func NewInspectionSampler(mean, stdDev, floor float64) *InspectionSampler {
	return &InspectionSampler{Mean: mean, StdDev: stdDev, Floor: floor}
}

// Sample returns a service duration in seconds, clamped at Floor.
func (s *InspectionSampler) Sample(rng *rand.Rand) float64 {
	v := rng.NormFloat64()*s.StdDev + s.Mean
	if v < s.Floor {
		return s.Floor
	}
	return v
}

// WalkSampler draws walk durations as base * Uniform(0.8, 1.2), where base
// comes from the esplanade→gate table.
type WalkSampler struct {
	JitterLow, JitterHigh float64
}

// NewWalkSampler creates a sampler with the default jitter range
// [0.8, 1.2].
func NewWalkSampler() *WalkSampler {
	return &WalkSampler{JitterLow: 0.8, JitterHigh: 1.2}
}

// Sample returns base scaled by a Uniform(JitterLow, JitterHigh) draw.
func (s *WalkSampler) Sample(rng *rand.Rand, base float64) float64 {
	u := s.JitterLow + rng.Float64()*(s.JitterHigh-s.JitterLow)
	return base * u
}

// TurnstileSampler draws turnstile passage durations: always a fast
// Lognormal(ln 10, 0.3) draw; with probability ProblemProb, an additional
// independent Lognormal(ln 20, 0.4) draw is added on top (a jammed or
// re-scanned pass).
type TurnstileSampler struct {
	FastMu, FastSigma       float64
	ProblemProb             float64
	ProblemMu, ProblemSigma float64
}

// NewTurnstileSampler creates a sampler from the configured mixture
// parameters.
func NewTurnstileSampler(fastMu, fastSigma, problemProb, problemMu, problemSigma float64) *TurnstileSampler {
	return &TurnstileSampler{
		FastMu: fastMu, FastSigma: fastSigma,
		ProblemProb: problemProb,
		ProblemMu:   problemMu, ProblemSigma: problemSigma,
	}
}

// Sample always draws a fast-lane duration, then with probability
// ProblemProb adds an independent problem-lane duration on top. The two
// draws are always made in this order (fast, then the Bernoulli gate, then
// problem) so the subsystem's RNG stream advances identically run to run.
func (s *TurnstileSampler) Sample(rng *rand.Rand) float64 {
	fast := lognormal(rng, s.FastMu, s.FastSigma)
	if rng.Float64() < s.ProblemProb {
		extra := lognormal(rng, s.ProblemMu, s.ProblemSigma)
		return fast + extra
	}
	return fast
}

func lognormal(rng *rand.Rand, mu, sigma float64) float64 {
	z := rng.NormFloat64()
	return math.Exp(mu + sigma*z)
}
