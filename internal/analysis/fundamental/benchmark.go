package fundamental

import (
	"fmt"
	"strings"
)

// SectorBenchmark holds typical valuation multiples for a GICS sector,
// used as a comparison baseline in the analyst context.
type SectorBenchmark struct {
	Sector   string
	MedianPE float64
	MedianPB float64
}

// sectorBenchmarks are long-run median multiples per sector. Approximate
// figures; they anchor relative-valuation language, not price targets.
var sectorBenchmarks = []SectorBenchmark{
	{Sector: "Technology", MedianPE: 28.0, MedianPB: 6.5},
	{Sector: "Communication Services", MedianPE: 19.0, MedianPB: 3.0},
	{Sector: "Consumer Cyclical", MedianPE: 22.0, MedianPB: 4.0},
	{Sector: "Consumer Defensive", MedianPE: 21.0, MedianPB: 4.5},
	{Sector: "Healthcare", MedianPE: 24.0, MedianPB: 4.0},
	{Sector: "Financial Services", MedianPE: 13.0, MedianPB: 1.5},
	{Sector: "Industrials", MedianPE: 21.0, MedianPB: 4.0},
	{Sector: "Energy", MedianPE: 12.0, MedianPB: 1.8},
	{Sector: "Basic Materials", MedianPE: 16.0, MedianPB: 2.2},
	{Sector: "Real Estate", MedianPE: 35.0, MedianPB: 2.3},
	{Sector: "Utilities", MedianPE: 18.0, MedianPB: 2.0},
}

// marketBenchmark is the broad-market fallback when the sector is unknown.
var marketBenchmark = SectorBenchmark{Sector: "S&P 500", MedianPE: 20.0, MedianPB: 4.2}

// Benchmark returns the valuation baseline for a sector, falling back to
// the broad market when the sector is missing or unrecognized.
func Benchmark(sector string) SectorBenchmark {
	key := strings.ToLower(strings.TrimSpace(sector))
	for _, b := range sectorBenchmarks {
		if strings.ToLower(b.Sector) == key {
			return b
		}
	}
	return marketBenchmark
}

func renderBenchmark(sector string) string {
	b := Benchmark(sector)
	return fmt.Sprintf("SECTOR BENCHMARK (%s): median P/E %.1f, median P/B %.1f\n",
		b.Sector, b.MedianPE, b.MedianPB)
}
