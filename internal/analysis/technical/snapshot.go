package technical

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// ErrNoData is returned when the series is empty: the engine reports a
// distinguishable "no data" condition instead of computing on an empty
// window.
var ErrNoData = errors.New("technical: no price data")

// RecentCloseCount is how many trailing closes (before the current bar) the
// snapshot carries for display.
const RecentCloseCount = 4

// ValidateSeries fails fast on malformed input: empty series, non-ascending
// or duplicate dates, or NaN closes. Such input is a caller-side
// precondition violation; computing on it would give silently wrong
// indicators.
func ValidateSeries(series models.PriceSeries) error {
	if len(series) == 0 {
		return ErrNoData
	}
	for i, bar := range series {
		if math.IsNaN(bar.Close) {
			return fmt.Errorf("technical: NaN close at index %d (%s)", i, bar.Date.Format("2006-01-02"))
		}
		if i > 0 && !series[i-1].Date.Before(bar.Date) {
			return fmt.Errorf("technical: dates not strictly ascending at index %d (%s >= %s)",
				i, series[i-1].Date.Format("2006-01-02"), bar.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Analyze runs the full engine over a price series and assembles the output
// bundle: indicator table, support/resistance levels, trend judgments, and
// display prices. pivotWindow and clusterThreshold fall back to the
// defaults when non-positive. The input series is never mutated and no
// state survives the call.
func Analyze(ticker string, series models.PriceSeries, pivotWindow int, clusterThreshold float64) (*models.TechnicalSnapshot, error) {
	if err := ValidateSeries(series); err != nil {
		return nil, err
	}

	table := ComputeTable(series)
	last := series.Last()

	recent := make([]float64, 0, RecentCloseCount)
	for i := len(series) - 2; i >= 0 && len(recent) < RecentCloseCount; i-- {
		recent = append(recent, series[i].Close)
	}

	return &models.TechnicalSnapshot{
		Ticker:       ticker,
		CurrentPrice: last.Close,
		RecentCloses: recent,
		Latest:       table.Latest(),
		Table:        table,
		Levels:       FindLevels(series, pivotWindow, clusterThreshold),
		Trend:        Interpret(table.Latest(), last.Close),
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// RenderText formats a snapshot as plain text for LLM prompts and report
// sections.
func RenderText(s *models.TechnicalSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ticker: %s\n", s.Ticker)
	fmt.Fprintf(&b, "Current Price: $%.2f\n", s.CurrentPrice)

	b.WriteString("\nRECENT CLOSES:\n")
	for i, c := range s.RecentCloses {
		fmt.Fprintf(&b, "  - T-%d: $%.2f\n", i+1, c)
	}

	row := s.Latest
	b.WriteString("\nLATEST INDICATORS:\n")
	fmt.Fprintf(&b, "  SMA(20): %s\n", row.SMA20)
	fmt.Fprintf(&b, "  SMA(50): %s\n", row.SMA50)
	fmt.Fprintf(&b, "  SMA(200): %s\n", row.SMA200)
	fmt.Fprintf(&b, "  EMA(12): %s\n", row.EMA12)
	fmt.Fprintf(&b, "  EMA(26): %s\n", row.EMA26)
	fmt.Fprintf(&b, "  RSI(14): %s\n", row.RSI14)
	fmt.Fprintf(&b, "  MACD: %s\n", row.MACD)
	fmt.Fprintf(&b, "  MACD Signal: %s\n", row.MACDSignal)
	fmt.Fprintf(&b, "  MACD Hist: %s\n", row.MACDHist)
	fmt.Fprintf(&b, "  Bollinger Upper: %s\n", row.BBUpper)
	fmt.Fprintf(&b, "  Bollinger Middle: %s\n", row.BBMiddle)
	fmt.Fprintf(&b, "  Bollinger Lower: %s\n", row.BBLower)

	b.WriteString("\nSUPPORT / RESISTANCE:\n")
	for i, lvl := range s.Levels.Resistances {
		fmt.Fprintf(&b, "  - R%d: $%.2f\n", i+1, lvl)
	}
	if len(s.Levels.Resistances) == 0 {
		b.WriteString("  - (no significant resistance found)\n")
	}
	for i, lvl := range s.Levels.Supports {
		fmt.Fprintf(&b, "  - S%d: $%.2f\n", i+1, lvl)
	}
	if len(s.Levels.Supports) == 0 {
		b.WriteString("  - (no significant support found)\n")
	}

	t := s.Trend
	b.WriteString("\nTREND READING:\n")
	fmt.Fprintf(&b, "  Long-term trend: %s\n", t.LongTerm)
	fmt.Fprintf(&b, "  Short-term trend: %s\n", t.ShortTerm)
	fmt.Fprintf(&b, "  RSI zone: %s (%s)\n", t.RSIZone, t.RSIValue)
	fmt.Fprintf(&b, "  MACD signal: %s\n", t.MACDSignal)
	if t.BollingerPos.Valid() {
		fmt.Fprintf(&b, "  Bollinger zone: %s (position %.2f)\n", t.Bollinger, t.BollingerPos.Value())
	} else {
		fmt.Fprintf(&b, "  Bollinger zone: %s\n", t.Bollinger)
	}

	return b.String()
}
