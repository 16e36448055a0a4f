package models

import (
	"fmt"
	"math"
	"strconv"
)

// Float is a float64 that can be undefined. Undefined values are stored as
// NaN and marshal to JSON null, so downstream consumers never mistake a
// not-yet-available indicator for zero.
type Float float64

// Undefined returns the undefined Float value.
func Undefined() Float { return Float(math.NaN()) }

// F wraps a plain float64.
func F(v float64) Float { return Float(v) }

// Valid reports whether the value is defined.
func (f Float) Valid() bool { return !math.IsNaN(float64(f)) }

// Value returns the underlying float64 (NaN when undefined).
func (f Float) Value() float64 { return float64(f) }

// String renders the value with two decimals, or "N/A" when undefined.
func (f Float) String() string {
	if !f.Valid() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", float64(f))
}

// MarshalJSON encodes undefined values as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(f), 'g', -1, 64), nil
}

// UnmarshalJSON decodes null as the undefined value.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Undefined()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("models: parse float %q: %w", data, err)
	}
	*f = Float(v)
	return nil
}
