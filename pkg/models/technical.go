package models

import "time"

// IndicatorRow holds the derived technical indicators for one bar. Fields
// whose rolling window has not yet filled are undefined, never zero.
type IndicatorRow struct {
	Date       time.Time `json:"date"`
	SMA20      Float     `json:"sma_20"`
	SMA50      Float     `json:"sma_50"`
	SMA200     Float     `json:"sma_200"`
	EMA12      Float     `json:"ema_12"`
	EMA26      Float     `json:"ema_26"`
	MACD       Float     `json:"macd"`
	MACDSignal Float     `json:"macd_signal"`
	MACDHist   Float     `json:"macd_hist"`
	RSI14      Float     `json:"rsi_14"`
	BBUpper    Float     `json:"bb_upper"`
	BBMiddle   Float     `json:"bb_middle"`
	BBLower    Float     `json:"bb_lower"`
}

// IndicatorTable is aligned 1:1 with the source PriceSeries. It is computed
// once per invocation and carries no state across calls.
type IndicatorTable []IndicatorRow

// Latest returns the final row. Valid only for non-empty tables.
func (t IndicatorTable) Latest() IndicatorRow { return t[len(t)-1] }

// SupportResistance holds clustered price levels around the current price.
// Both slices are nearest-first and hold at most three entries. An empty
// slice means no significant level was found on that side; levels are never
// fabricated.
type SupportResistance struct {
	Resistances []float64 `json:"resistances"` // ascending, all > current close
	Supports    []float64 `json:"supports"`    // descending, all < current close
}

// TrendLabel is a directional judgment.
type TrendLabel string

const (
	TrendBullish TrendLabel = "BULLISH"
	TrendBearish TrendLabel = "BEARISH"
	TrendNeutral TrendLabel = "NEUTRAL"
)

// ZoneLabel is a positional judgment for bounded oscillators and bands.
type ZoneLabel string

const (
	ZoneOverbought     ZoneLabel = "OVERBOUGHT"
	ZoneOversold       ZoneLabel = "OVERSOLD"
	ZoneNearOverbought ZoneLabel = "NEAR OVERBOUGHT"
	ZoneNearOversold   ZoneLabel = "NEAR OVERSOLD"
	ZoneNeutral        ZoneLabel = "NEUTRAL"
)

// TrendInterpretation holds five independent categorical judgments derived
// from the latest indicator row and latest close. No composite score is
// computed; synthesis is left to downstream consumers.
type TrendInterpretation struct {
	LongTerm   TrendLabel `json:"long_term"`
	ShortTerm  TrendLabel `json:"short_term"`
	RSIZone    ZoneLabel  `json:"rsi_zone"`
	RSIValue   Float      `json:"rsi_value"`
	MACDSignal TrendLabel `json:"macd_signal"` // binary: BULLISH or BEARISH
	Bollinger  ZoneLabel  `json:"bollinger_zone"`
	// BollingerPos is (close-lower)/(upper-lower); undefined when the close
	// sits outside the bands or the band width is zero.
	BollingerPos Float `json:"bollinger_pos"`
}

// TechnicalSnapshot is the read-only output bundle of the indicator engine:
// the full indicator table, the clustered support/resistance levels, the
// trend judgments, and the raw prices needed for display. It is serializable
// to JSON for non-numeric downstream stages and is never mutated after
// creation.
type TechnicalSnapshot struct {
	Ticker       string              `json:"ticker"`
	CurrentPrice float64             `json:"current_price"`
	RecentCloses []float64           `json:"recent_closes"` // previous 4 closes, newest first
	Latest       IndicatorRow        `json:"latest"`
	Table        IndicatorTable      `json:"table,omitempty"`
	Levels       SupportResistance   `json:"levels"`
	Trend        TrendInterpretation `json:"trend"`
	GeneratedAt  time.Time           `json:"generated_at"`
}
