package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFloatUndefinedMarshalsToNull(t *testing.T) {
	row := IndicatorRow{
		Date:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		SMA20: Undefined(),
		EMA12: F(101.5),
	}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"sma_20":null`) {
		t.Errorf("undefined SMA20 should marshal to null, got %s", s)
	}
	if !strings.Contains(s, `"ema_12":101.5`) {
		t.Errorf("defined EMA12 should marshal to its value, got %s", s)
	}
}

func TestFloatUnmarshalNull(t *testing.T) {
	var row IndicatorRow
	if err := json.Unmarshal([]byte(`{"sma_20":null,"rsi_14":48.2}`), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if row.SMA20.Valid() {
		t.Error("null should unmarshal to undefined")
	}
	if !row.RSI14.Valid() || row.RSI14.Value() != 48.2 {
		t.Errorf("RSI14 = %v, want 48.2", row.RSI14)
	}
}

func TestFloatString(t *testing.T) {
	if got := Undefined().String(); got != "N/A" {
		t.Errorf("undefined String() = %q, want N/A", got)
	}
	if got := F(12.345).String(); got != "12.35" {
		t.Errorf("String() = %q, want 12.35", got)
	}
}

func TestPriceSeriesCloses(t *testing.T) {
	s := PriceSeries{
		{Close: 100},
		{Close: 101},
		{Close: 102},
	}
	closes := s.Closes()
	if len(closes) != 3 || closes[0] != 100 || closes[2] != 102 {
		t.Errorf("Closes() = %v", closes)
	}
	if s.Last().Close != 102 {
		t.Errorf("Last().Close = %v, want 102", s.Last().Close)
	}
}
