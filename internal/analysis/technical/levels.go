package technical

import (
	"sort"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// Support/resistance defaults.
const (
	// DefaultPivotWindow is the centered detection window: a bar needs
	// DefaultPivotWindow/2 fully populated bars on each side.
	DefaultPivotWindow = 10
	// DefaultClusterThreshold is the relative distance below which two
	// adjacent pivot values merge into the same cluster.
	DefaultClusterThreshold = 0.03
	// MaxLevelsPerSide caps the reported levels on each side of the price.
	MaxLevelsPerSide = 3
)

// PivotHighs returns the high prices of bars that are local maxima within a
// centered window. With window W, bar i qualifies when it has W/2 bars on
// each side and no high in that span exceeds its own. This is the
// centered-window variant; it deliberately looks forward for confirmation,
// unlike every other computation in the engine.
func PivotHighs(series models.PriceSeries, window int) []float64 {
	if window <= 0 {
		window = DefaultPivotWindow
	}
	half := window / 2
	var pivots []float64
	for i := half; i < len(series)-half; i++ {
		isPivot := true
		for j := i - half; j <= i+half; j++ {
			if series[j].High > series[i].High {
				isPivot = false
				break
			}
		}
		if isPivot {
			pivots = append(pivots, series[i].High)
		}
	}
	return pivots
}

// PivotLows is the symmetric rule for local minima of the low price.
func PivotLows(series models.PriceSeries, window int) []float64 {
	if window <= 0 {
		window = DefaultPivotWindow
	}
	half := window / 2
	var pivots []float64
	for i := half; i < len(series)-half; i++ {
		isPivot := true
		for j := i - half; j <= i+half; j++ {
			if series[j].Low < series[i].Low {
				isPivot = false
				break
			}
		}
		if isPivot {
			pivots = append(pivots, series[i].Low)
		}
	}
	return pivots
}

// clusterLevels merges sorted pivot values left to right: a value joins the
// current cluster when its relative distance to the cluster's last member is
// below threshold, and each cluster collapses to its mean. The greedy merge
// is order-dependent rather than globally optimal, but re-clustering the
// same sorted input is idempotent.
func clusterLevels(levels []float64, threshold float64) []float64 {
	if len(levels) == 0 {
		return nil
	}
	sorted := make([]float64, len(levels))
	copy(sorted, levels)
	sort.Float64s(sorted)

	var (
		clusters []float64
		sum      = sorted[0]
		count    = 1
		last     = sorted[0]
	)
	for _, lvl := range sorted[1:] {
		if relDist(lvl, last) < threshold {
			sum += lvl
			count++
		} else {
			clusters = append(clusters, sum/float64(count))
			sum = lvl
			count = 1
		}
		last = lvl
	}
	clusters = append(clusters, sum/float64(count))
	return clusters
}

func relDist(a, b float64) float64 {
	d := (a - b) / b
	if d < 0 {
		return -d
	}
	return d
}

// FindLevels derives up to MaxLevelsPerSide resistance levels above the
// current close and support levels below it, nearest first. Empty slices
// mean no significant level exists on that side; the engine never invents
// one.
func FindLevels(series models.PriceSeries, window int, threshold float64) models.SupportResistance {
	if threshold <= 0 {
		threshold = DefaultClusterThreshold
	}
	if len(series) == 0 {
		return models.SupportResistance{}
	}
	current := series.Last().Close

	var sr models.SupportResistance
	for _, lvl := range clusterLevels(PivotHighs(series, window), threshold) {
		if lvl > current {
			sr.Resistances = append(sr.Resistances, lvl)
		}
	}
	// Cluster means arrive ascending, so resistances are already
	// nearest-first.
	if len(sr.Resistances) > MaxLevelsPerSide {
		sr.Resistances = sr.Resistances[:MaxLevelsPerSide]
	}

	lows := clusterLevels(PivotLows(series, window), threshold)
	for i := len(lows) - 1; i >= 0; i-- { // descending: nearest support first
		if lows[i] < current {
			sr.Supports = append(sr.Supports, lows[i])
		}
	}
	if len(sr.Supports) > MaxLevelsPerSide {
		sr.Supports = sr.Supports[:MaxLevelsPerSide]
	}
	return sr
}
