package technical

import (
	"math"
	"reflect"
	"testing"
)

func TestPivotHighCenteredWindow(t *testing.T) {
	// An 11-bar series has exactly one evaluable bar for window 10 (5 bars
	// each side): the center. A symmetric peak there is detected.
	peakAtCenter := makeSeries([]float64{1, 2, 3, 4, 5, 9, 5, 4, 3, 2, 1})
	highs := PivotHighs(peakAtCenter, 10)
	if len(highs) != 1 || highs[0] != 10 { // high = close + 1
		t.Fatalf("PivotHighs = %v, want the single centered peak", highs)
	}

	// Shifting the peak one bar off-center removes it: the only evaluable
	// bar is no longer the window maximum.
	peakOffCenter := makeSeries([]float64{1, 2, 3, 4, 9, 5, 4, 3, 2, 1, 1})
	if highs := PivotHighs(peakOffCenter, 10); len(highs) != 0 {
		t.Errorf("off-center peak detected as pivot: %v", highs)
	}
}

func TestPivotLowCenteredWindow(t *testing.T) {
	trough := makeSeries([]float64{9, 8, 7, 6, 5, 2, 5, 6, 7, 8, 9})
	lows := PivotLows(trough, 10)
	if len(lows) != 1 || lows[0] != 1 { // low = close - 1
		t.Fatalf("PivotLows = %v, want the single centered trough", lows)
	}
}

func TestClusterLevelsGreedyMerge(t *testing.T) {
	got := clusterLevels([]float64{110, 100, 102}, 0.03)
	want := []float64{101, 110} // 100 and 102 merge (2% apart), 110 stands alone
	if !reflect.DeepEqual(got, want) {
		t.Errorf("clusterLevels = %v, want %v", got, want)
	}
}

func TestClusterLevelsChainsOnLastMember(t *testing.T) {
	// Each value is within 3% of the previous member but not of the first,
	// so the left-to-right greedy merge chains them into one cluster.
	got := clusterLevels([]float64{100, 102.9, 105.8}, 0.03)
	if len(got) != 1 {
		t.Fatalf("clusterLevels = %v, want one chained cluster", got)
	}
	want := (100 + 102.9 + 105.8) / 3
	if math.Abs(got[0]-want) > 1e-9 {
		t.Errorf("cluster mean = %v, want %v", got[0], want)
	}
}

func TestClusterLevelsIdempotent(t *testing.T) {
	levels := []float64{100, 101, 105, 120, 121, 150}
	first := clusterLevels(levels, 0.03)
	second := clusterLevels(levels, 0.03)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-clustering the same input differs: %v vs %v", first, second)
	}
}

func TestClusterLevelsEmpty(t *testing.T) {
	if got := clusterLevels(nil, 0.03); got != nil {
		t.Errorf("clusterLevels(nil) = %v, want nil", got)
	}
}

// zigzagCloses alternates between troughs and peaks so pivots exist on both
// sides of the final price.
func zigzagCloses(n int, base, amp float64, period int) []float64 {
	out := make([]float64, n)
	for i := range out {
		phase := float64(i%period) / float64(period)
		if phase < 0.5 {
			out[i] = base + amp*(4*phase-1)
		} else {
			out[i] = base + amp*(3-4*phase)
		}
	}
	return out
}

func TestFindLevelsOrderingAndBounds(t *testing.T) {
	series := makeSeries(zigzagCloses(240, 200, 30, 24))
	sr := FindLevels(series, DefaultPivotWindow, DefaultClusterThreshold)
	current := series.Last().Close

	if len(sr.Resistances) == 0 || len(sr.Supports) == 0 {
		t.Fatalf("expected levels on both sides, got %+v (close %.2f)", sr, current)
	}
	if len(sr.Resistances) > MaxLevelsPerSide || len(sr.Supports) > MaxLevelsPerSide {
		t.Fatalf("more than %d levels per side: %+v", MaxLevelsPerSide, sr)
	}
	for i, r := range sr.Resistances {
		if r <= current {
			t.Errorf("resistance %v not above current close %v", r, current)
		}
		if i > 0 && sr.Resistances[i-1] > r {
			t.Error("resistances not ascending (nearest-first)")
		}
	}
	for i, s := range sr.Supports {
		if s >= current {
			t.Errorf("support %v not below current close %v", s, current)
		}
		if i > 0 && sr.Supports[i-1] < s {
			t.Error("supports not descending (nearest-first)")
		}
	}
}

func TestFindLevelsDeterministic(t *testing.T) {
	series := makeSeries(zigzagCloses(240, 200, 30, 24))
	first := FindLevels(series, 0, 0)
	second := FindLevels(series, 0, 0)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("FindLevels not deterministic: %+v vs %+v", first, second)
	}
}

func TestFindLevelsEmptySides(t *testing.T) {
	// Too short for any evaluable pivot bar.
	sr := FindLevels(makeSeries(rampCloses(8, 100, 1)), DefaultPivotWindow, DefaultClusterThreshold)
	if sr.Resistances != nil || sr.Supports != nil {
		t.Errorf("short series should report no levels, got %+v", sr)
	}
}
