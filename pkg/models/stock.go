// Package models defines the core data structures shared across the
// stockadvisor pipeline.
package models

import "time"

// Stock holds basic identification for a listed company.
type Stock struct {
	Ticker   string `json:"ticker"`   // e.g., "AAPL"
	Name     string `json:"name"`     // e.g., "Apple Inc."
	Exchange string `json:"exchange"` // e.g., "NASDAQ"
	Sector   string `json:"sector"`   // e.g., "Technology"
	Industry string `json:"industry"` // e.g., "Consumer Electronics"
	Currency string `json:"currency"` // e.g., "USD"
}

// PriceBar is one daily trading session. Bars are immutable once ingested.
type PriceBar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered, chronological sequence of daily bars with no
// duplicate dates. The series is owned by the caller; the indicator engine
// never mutates it and never retains a reference across calls. At least 200
// bars are recommended so the longest rolling window is populated.
type PriceSeries []PriceBar

// Closes extracts the closing prices in order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Last returns the most recent bar. Valid only for non-empty series.
func (s PriceSeries) Last() PriceBar { return s[len(s)-1] }
