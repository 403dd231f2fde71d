package sim

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func TestSampleArrivalTime_WithinTruncationWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	preGame := int64(180 * 60)
	for i := 0; i < 1000; i++ {
		v := sampleArrivalTime(rng, preGame)
		if v < -preGame || v > 0 {
			t.Fatalf("sampleArrivalTime = %d, outside [-%d, 0]", v, preGame)
		}
	}
}

func TestSampleEsplanade_RespectsExtremeFractions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if got := sampleEsplanade(rng, 1.0); got != North {
			t.Fatalf("northFraction=1.0 should always draw North, got %v", got)
		}
	}
	for i := 0; i < 50; i++ {
		if got := sampleEsplanade(rng, 0.0); got != South {
			t.Fatalf("northFraction=0.0 should always draw South, got %v", got)
		}
	}
}

func TestGateSampler_OnlyDrawsConfiguredGates(t *testing.T) {
	capacity := map[Gate]int64{GateA: 1, GateC: 3}
	gs := newGateSampler(capacity)
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Gate]bool)
	for i := 0; i < 200; i++ {
		seen[gs.sample(rng)] = true
	}
	for g := range seen {
		if g != GateA && g != GateC {
			t.Errorf("sampled gate %v not in configured set", g)
		}
	}
}

func TestGenerateArrivals_GateSharesTrackCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalFans = 20000
	rng := rand.New(rand.NewSource(42))
	fans := GenerateArrivals(cfg, rng)

	counts := make(map[Gate]int)
	for _, f := range fans {
		counts[f.Gate]++
	}
	total := float64(cfg.TotalGateCapacity())
	for _, g := range Gates {
		expected := float64(cfg.GateCapacity[g]) / total
		observed := float64(counts[g]) / float64(len(fans))
		// With n=20000 the binomial stderr is ~0.003; 0.02 absolute is a
		// generous margin that still catches a wrong weighting table.
		if diff := math.Abs(observed - expected); diff > 0.02 {
			t.Errorf("gate %s share = %.4f, want within 0.02 of %.4f", g, observed, expected)
		}
	}
}

func TestGenerateArrivals_CountAndSortedIDAssignment(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalFans = 200
	rng := rand.New(rand.NewSource(1))
	fans := GenerateArrivals(cfg, rng)

	if len(fans) != 200 {
		t.Fatalf("len(fans) = %d, want 200", len(fans))
	}
	if !sort.SliceIsSorted(fans, func(i, j int) bool { return fans[i].Arrival < fans[j].Arrival }) {
		t.Errorf("fans should be generated in non-decreasing arrival order")
	}
	for i, f := range fans {
		if f.ID != i+1 {
			t.Errorf("fan at index %d has ID %d, want %d", i, f.ID, i+1)
		}
	}
}
