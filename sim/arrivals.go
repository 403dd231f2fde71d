package sim

import (
	"math/rand"
	"sort"
)

// Arrival times follow a fixed-shape truncated Normal: mean -3300s, stddev
// 1020s (i.e. 55 minutes before kickoff, sigma 17 minutes), truncated to
// [-preGameSeconds, 0] by rejection. The pre-game and peak-minute config
// knobs affect only the truncation window and bookkeeping, never this
// shape.
const (
	arrivalMeanSeconds   = -3300.0
	arrivalStdDevSeconds = 1020.0
)

// sampleArrivalTime draws one truncated-Normal arrival time in
// [-preGameSeconds, 0] by rejection: redraw until the sample lands inside
// the truncation interval. The number of redraws is not capped; with the
// default 180-minute window almost every draw lands inside.
func sampleArrivalTime(rng *rand.Rand, preGameSeconds int64) int64 {
	lo := -float64(preGameSeconds)
	for {
		v := rng.NormFloat64()*arrivalStdDevSeconds + arrivalMeanSeconds
		if v >= lo && v <= 0 {
			return int64(v)
		}
	}
}

// sampleEsplanade draws North with probability northFraction, else South.
func sampleEsplanade(rng *rand.Rand, northFraction float64) Esplanade {
	if rng.Float64() < northFraction {
		return North
	}
	return South
}

// gateSampler draws a gate from a categorical distribution proportional to
// gate capacity, via the standard cumulative-weight / inverse-CDF method.
type gateSampler struct {
	gates   []Gate
	cumProb []float64
}

func newGateSampler(capacity map[Gate]int64) *gateSampler {
	total := int64(0)
	for _, c := range capacity {
		total += c
	}
	gs := &gateSampler{}
	cum := 0.0
	for _, g := range Gates {
		c, ok := capacity[g]
		if !ok {
			continue
		}
		cum += float64(c) / float64(total)
		gs.gates = append(gs.gates, g)
		gs.cumProb = append(gs.cumProb, cum)
	}
	if len(gs.cumProb) > 0 {
		gs.cumProb[len(gs.cumProb)-1] = 1.0
	}
	return gs
}

func (gs *gateSampler) sample(rng *rand.Rand) Gate {
	u := rng.Float64()
	idx := sort.SearchFloat64s(gs.cumProb, u)
	if idx >= len(gs.gates) {
		idx = len(gs.gates) - 1
	}
	return gs.gates[idx]
}

// GenerateArrivals produces exactly totalFans arrival records. Draw order
// is fixed so the seed fully determines the trajectory: all totalFans
// arrival times are drawn and sorted first, then esplanade and gate are
// drawn per fan in sorted-arrival order. Fan ids are assigned 1..N in that
// same sorted order.
func GenerateArrivals(cfg *Config, rng *rand.Rand) []*Fan {
	preGameSeconds := int64(cfg.PreGameMinutes) * 60
	times := make([]int64, cfg.TotalFans)
	for i := range times {
		times[i] = sampleArrivalTime(rng, preGameSeconds)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	gs := newGateSampler(cfg.GateCapacity)
	fans := make([]*Fan, cfg.TotalFans)
	for i, t := range times {
		fans[i] = &Fan{
			ID:        i + 1,
			Arrival:   t,
			Esplanade: sampleEsplanade(rng, cfg.NorthFraction),
			Gate:      gs.sample(rng),
		}
	}
	return fans
}
