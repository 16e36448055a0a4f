package technical

import (
	"github.com/advisorly/stockadvisor/pkg/models"
)

// RSI and Bollinger zone thresholds.
const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0

	bbNearUpper = 0.8
	bbNearLower = 0.2
)

// Interpret derives the five independent categorical judgments from the
// latest indicator row and latest close. Comparisons against undefined
// values are false, so a short series degrades to NEUTRAL rather than
// producing a directional call from missing data. The judgments are not
// aggregated; synthesis belongs to the caller.
func Interpret(latest models.IndicatorRow, close float64) models.TrendInterpretation {
	ti := models.TrendInterpretation{
		LongTerm:     models.TrendNeutral,
		ShortTerm:    models.TrendNeutral,
		RSIZone:      models.ZoneNeutral,
		RSIValue:     latest.RSI14,
		Bollinger:    models.ZoneNeutral,
		BollingerPos: models.Undefined(),
	}

	sma20 := latest.SMA20.Value()
	sma50 := latest.SMA50.Value()
	sma200 := latest.SMA200.Value()

	switch {
	case close > sma200 && sma50 > sma200:
		ti.LongTerm = models.TrendBullish
	case close < sma200 && sma50 < sma200:
		ti.LongTerm = models.TrendBearish
	}

	switch {
	case close > sma20 && sma20 > sma50:
		ti.ShortTerm = models.TrendBullish
	case close < sma20 && sma20 < sma50:
		ti.ShortTerm = models.TrendBearish
	}

	rsi := latest.RSI14.Value()
	switch {
	case rsi > rsiOverbought:
		ti.RSIZone = models.ZoneOverbought
	case rsi < rsiOversold:
		ti.RSIZone = models.ZoneOversold
	}

	// Binary by design: there is no neutral MACD reading.
	if latest.MACD.Value() > latest.MACDSignal.Value() {
		ti.MACDSignal = models.TrendBullish
	} else {
		ti.MACDSignal = models.TrendBearish
	}

	upper := latest.BBUpper.Value()
	lower := latest.BBLower.Value()
	switch {
	case close > upper:
		ti.Bollinger = models.ZoneOverbought
	case close < lower:
		ti.Bollinger = models.ZoneOversold
	case upper > lower:
		pos := (close - lower) / (upper - lower)
		ti.BollingerPos = models.F(pos)
		switch {
		case pos > bbNearUpper:
			ti.Bollinger = models.ZoneNearOverbought
		case pos < bbNearLower:
			ti.Bollinger = models.ZoneNearOversold
		}
	}
	// Zero band width (flat series) and undefined bands both read NEUTRAL
	// with an undefined position.

	return ti
}
