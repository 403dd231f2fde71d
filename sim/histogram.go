package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PlotHistogram is the cross-run arrival-time histogram hand-off for an
// external plotting tool. The engine never imports a plotting library;
// this is pure data.
type PlotHistogram struct {
	BinEdges    []float64 `json:"bin_edges"`
	MeanPerBin  []float64 `json:"mean_per_bin"`
	StdevPerBin []float64 `json:"stdev_per_bin"`
	NumRuns     int       `json:"num_runs"`
	BinMinutes  int       `json:"bin_minutes"`
}

// BuildPlotHistogram bins each run's fan arrival times (seconds -> minutes)
// into binMinutes-wide buckets spanning the global min/max across all
// runs, then computes per-bin mean and stdev across runs.
func BuildPlotHistogram(runs [][]*Fan, binMinutes int) *PlotHistogram {
	if len(runs) == 0 {
		return &PlotHistogram{BinMinutes: binMinutes}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, fans := range runs {
		for _, f := range fans {
			m := float64(f.Arrival) / 60.0
			if m < lo {
				lo = m
			}
			if m > hi {
				hi = m
			}
		}
	}
	if math.IsInf(lo, 1) {
		return &PlotHistogram{NumRuns: len(runs), BinMinutes: binMinutes}
	}

	start := int(math.Floor(lo/float64(binMinutes))) * binMinutes
	end := (int(math.Floor(hi/float64(binMinutes))) + 1) * binMinutes
	numBins := (end - start) / binMinutes

	edges := make([]float64, numBins+1)
	for i := range edges {
		edges[i] = float64(start + i*binMinutes)
	}

	perRunCounts := make([][]float64, len(runs))
	for ri, fans := range runs {
		counts := make([]float64, numBins)
		for _, f := range fans {
			m := float64(f.Arrival) / 60.0
			idx := (int(math.Floor(m/float64(binMinutes)))*binMinutes - start) / binMinutes
			if idx < 0 {
				idx = 0
			}
			if idx >= numBins {
				idx = numBins - 1
			}
			counts[idx]++
		}
		perRunCounts[ri] = counts
	}

	mean := make([]float64, numBins)
	stdev := make([]float64, numBins)
	across := make([]float64, len(runs))
	for b := 0; b < numBins; b++ {
		for ri := range runs {
			across[ri] = perRunCounts[ri][b]
		}
		mean[b] = stat.Mean(across, nil)
		stdev[b] = sampleStdDev(across)
	}

	return &PlotHistogram{
		BinEdges:    edges,
		MeanPerBin:  mean,
		StdevPerBin: stdev,
		NumRuns:     len(runs),
		BinMinutes:  binMinutes,
	}
}
