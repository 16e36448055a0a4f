package technical

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// uptrendSeries is a 250-bar linear ramp from 100 to 349 in close, with a
// periodic deep dip in the lows so that pivot supports exist under the
// trend.
func uptrendSeries() models.PriceSeries {
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, 250)
	for i := range series {
		c := 100 + float64(i)
		low := c - 1
		if i%10 == 5 {
			low = c - 8
		}
		series[i] = models.PriceBar{
			Date:  base.AddDate(0, 0, i),
			Open:  c,
			High:  c + 1,
			Low:   low,
			Close: c,
		}
	}
	return series
}

func TestAnalyzeUptrendScenario(t *testing.T) {
	snap, err := Analyze("TEST", uptrendSeries(), 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if snap.Trend.LongTerm != models.TrendBullish {
		t.Errorf("long-term trend = %s, want BULLISH", snap.Trend.LongTerm)
	}
	if snap.Trend.ShortTerm != models.TrendBullish {
		t.Errorf("short-term trend = %s, want BULLISH", snap.Trend.ShortTerm)
	}
	if snap.Trend.MACDSignal != models.TrendBullish {
		t.Errorf("MACD signal = %s, want BULLISH", snap.Trend.MACDSignal)
	}
	// Highs rise monotonically, so no pivot high exists and nothing sits
	// above the current maximum.
	if len(snap.Levels.Resistances) != 0 {
		t.Errorf("resistances = %v, want none in a monotonic uptrend", snap.Levels.Resistances)
	}
	if len(snap.Levels.Supports) == 0 {
		t.Error("expected supports from the dip pivots")
	}
	for _, s := range snap.Levels.Supports {
		if s >= snap.CurrentPrice {
			t.Errorf("support %v not below current price %v", s, snap.CurrentPrice)
		}
	}
}

func TestAnalyzeFlatScenario(t *testing.T) {
	snap, err := Analyze("FLAT", makeSeries(flatCloses(210, 100)), 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := snap.Latest.RSI14.Value(); got != 50 {
		t.Errorf("flat RSI = %v, want 50", got)
	}
	if snap.Latest.BBUpper.Value() != 100 || snap.Latest.BBLower.Value() != 100 {
		t.Errorf("flat bands = %s/%s, want zero width at 100",
			snap.Latest.BBUpper, snap.Latest.BBLower)
	}
	if snap.Trend.Bollinger != models.ZoneNeutral {
		t.Errorf("flat Bollinger zone = %s, want NEUTRAL", snap.Trend.Bollinger)
	}
}

func TestAnalyzeTableAlignment(t *testing.T) {
	series := makeSeries(wavyCloses(230, 150, 10))
	snap, err := Analyze("ALGN", series, 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(snap.Table) != len(series) {
		t.Fatalf("table rows = %d, want %d", len(snap.Table), len(series))
	}
	for i := range series {
		if !snap.Table[i].Date.Equal(series[i].Date) {
			t.Fatalf("row %d date misaligned", i)
		}
	}
	if snap.CurrentPrice != series.Last().Close {
		t.Errorf("current price = %v, want %v", snap.CurrentPrice, series.Last().Close)
	}
}

func TestAnalyzeRecentCloses(t *testing.T) {
	series := makeSeries([]float64{10, 11, 12, 13, 14, 15})
	snap, err := Analyze("RC", series, 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []float64{14, 13, 12, 11} // newest first, current bar excluded
	if !reflect.DeepEqual(snap.RecentCloses, want) {
		t.Errorf("RecentCloses = %v, want %v", snap.RecentCloses, want)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	series := uptrendSeries()
	a, err := Analyze("DET", series, 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	b, err := Analyze("DET", series, 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(a.Levels, b.Levels) {
		t.Errorf("levels differ across runs: %+v vs %+v", a.Levels, b.Levels)
	}
	// Compare rendered text: Trend carries Float fields whose NaN values
	// would make a struct comparison report a spurious difference.
	if got, want := fmt.Sprintf("%+v", a.Trend), fmt.Sprintf("%+v", b.Trend); got != want {
		t.Errorf("trend differs across runs: %v vs %v", got, want)
	}
}

func TestAnalyzeNoData(t *testing.T) {
	_, err := Analyze("EMPTY", nil, 0, 0)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Analyze(empty) error = %v, want ErrNoData", err)
	}
}

func TestValidateSeriesMalformed(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	dup := models.PriceSeries{
		{Date: base, Close: 100},
		{Date: base, Close: 101},
	}
	if err := ValidateSeries(dup); err == nil {
		t.Error("duplicate dates should fail validation")
	}

	unsorted := models.PriceSeries{
		{Date: base.AddDate(0, 0, 1), Close: 100},
		{Date: base, Close: 101},
	}
	if err := ValidateSeries(unsorted); err == nil {
		t.Error("unsorted dates should fail validation")
	}

	nan := models.PriceSeries{
		{Date: base, Close: math.NaN()},
	}
	if err := ValidateSeries(nan); err == nil {
		t.Error("NaN close should fail validation")
	}
}

func TestAnalyzeShortSeriesDegrades(t *testing.T) {
	snap, err := Analyze("SHORT", makeSeries(rampCloses(30, 100, 1)), 0, 0)
	if err != nil {
		t.Fatalf("short-but-valid series must not error: %v", err)
	}
	if snap.Latest.SMA200.Valid() {
		t.Error("SMA200 should be undefined on a 30-bar series")
	}
	if !snap.Latest.SMA20.Valid() {
		t.Error("SMA20 should be defined on a 30-bar series")
	}
	if snap.Trend.LongTerm != models.TrendNeutral {
		t.Errorf("long-term trend without SMA200 = %s, want NEUTRAL", snap.Trend.LongTerm)
	}
}

func TestRenderText(t *testing.T) {
	snap, err := Analyze("TSLA", uptrendSeries(), 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	text := RenderText(snap)

	for _, want := range []string{
		"Ticker: TSLA",
		"Current Price: $349.00",
		"T-1: $348.00",
		"SMA(200):",
		"(no significant resistance found)",
		"S1: $",
		"Long-term trend: BULLISH",
		"MACD signal: BULLISH",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "no significant support found") {
		t.Error("support side should not be empty for the dipped uptrend")
	}
}
