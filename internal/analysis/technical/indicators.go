// Package technical implements the indicator engine: rolling and
// exponential statistics over a daily price series, empirical
// support/resistance clustering, and a categorical trend interpretation.
// All functions are pure and deterministic; identical input always
// produces identical output.
package technical

import (
	"math"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// Default indicator parameters.
const (
	SMAShort  = 20
	SMAMedium = 50
	SMALong   = 200

	EMAFast       = 12
	EMASlow       = 26
	MACDSignalLen = 9

	RSIPeriod = 14

	BollingerPeriod = 20
	BollingerWidth  = 2.0
)

// undef marks a value whose rolling window has not filled yet.
var undef = math.NaN()

// SMA computes the simple moving average. The first window-1 entries are
// undefined (NaN).
func SMA(data []float64, window int) []float64 {
	n := len(data)
	out := make([]float64, n)
	for i := 0; i < n && i < window-1; i++ {
		out[i] = undef
	}
	if n < window || window <= 0 {
		for i := range out {
			out[i] = undef
		}
		return out
	}

	sum := 0.0
	for i := 0; i < window; i++ {
		sum += data[i]
	}
	out[window-1] = sum / float64(window)
	for i := window; i < n; i++ {
		sum += data[i] - data[i-window]
		out[i] = sum / float64(window)
	}
	return out
}

// EMA computes the exponential moving average with smoothing factor
// alpha = 2/(span+1), seeded with the first sample. There is no warm-up
// gap: every entry is defined from index 0.
func EMA(data []float64, span int) []float64 {
	n := len(data)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = data[0]
	for i := 1; i < n; i++ {
		out[i] = alpha*data[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RollingStd computes the rolling sample standard deviation (ddof=1).
// The first window-1 entries are undefined.
func RollingStd(data []float64, window int) []float64 {
	n := len(data)
	out := make([]float64, n)
	for i := range out {
		out[i] = undef
	}
	if window < 2 || n < window {
		return out
	}

	for i := window - 1; i < n; i++ {
		w := data[i-window+1 : i+1]
		mean := 0.0
		for _, v := range w {
			mean += v
		}
		mean /= float64(window)

		sumSq := 0.0
		for _, v := range w {
			d := v - mean
			sumSq += d * d
		}
		out[i] = math.Sqrt(sumSq / float64(window-1))
	}
	return out
}

// RSI computes the Relative Strength Index over close prices using a simple
// rolling mean of gains and losses (not Wilder smoothing). A window of
// `period` deltas is required, so the first `period` entries are undefined.
// When the average loss is zero the ratio is undefined and RSI defaults to
// 50, a neutral reading rather than a division fault.
func RSI(data []float64, period int) []float64 {
	n := len(data)
	out := make([]float64, n)
	for i := range out {
		out[i] = undef
	}
	if period <= 0 || n < period+1 {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := data[i] - data[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, loseSum float64
	for i := 1; i <= period; i++ {
		gainSum += gains[i]
		loseSum += losses[i]
	}
	for i := period; i < n; i++ {
		if i > period {
			gainSum += gains[i] - gains[i-period]
			loseSum += losses[i] - losses[i-period]
		}
		avgLoss := loseSum / float64(period)
		if avgLoss == 0 {
			out[i] = 50
			continue
		}
		avgGain := gainSum / float64(period)
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// ComputeTable derives the full indicator table from a validated price
// series. The table has exactly one row per bar; row i depends only on
// bars at or before i.
func ComputeTable(series models.PriceSeries) models.IndicatorTable {
	closes := series.Closes()
	n := len(closes)

	sma20 := SMA(closes, SMAShort)
	sma50 := SMA(closes, SMAMedium)
	sma200 := SMA(closes, SMALong)
	ema12 := EMA(closes, EMAFast)
	ema26 := EMA(closes, EMASlow)

	macd := make([]float64, n)
	for i := 0; i < n; i++ {
		macd[i] = ema12[i] - ema26[i]
	}
	signal := EMA(macd, MACDSignalLen)

	rsi := RSI(closes, RSIPeriod)
	std20 := RollingStd(closes, BollingerPeriod)

	table := make(models.IndicatorTable, n)
	for i := 0; i < n; i++ {
		row := models.IndicatorRow{
			Date:       series[i].Date,
			SMA20:      models.Float(sma20[i]),
			SMA50:      models.Float(sma50[i]),
			SMA200:     models.Float(sma200[i]),
			EMA12:      models.Float(ema12[i]),
			EMA26:      models.Float(ema26[i]),
			MACD:       models.Float(macd[i]),
			MACDSignal: models.Float(signal[i]),
			MACDHist:   models.Float(macd[i] - signal[i]),
			RSI14:      models.Float(rsi[i]),
			BBMiddle:   models.Float(sma20[i]),
			BBUpper:    models.Float(sma20[i] + BollingerWidth*std20[i]),
			BBLower:    models.Float(sma20[i] - BollingerWidth*std20[i]),
		}
		table[i] = row
	}
	return table
}
