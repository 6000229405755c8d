package chart

import (
	"encoding/json"
	"strconv"
)

// Value is an optional data value. The zero Value is absent.
type Value struct {
	v  float64
	ok bool
}

// Some returns a present value.
func Some(v float64) Value {
	return Value{v: v, ok: true}
}

// None returns an absent value.
func None() Value {
	return Value{}
}

// Get returns the value and whether it is present.
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

// Present reports whether the value is set.
func (v Value) Present() bool {
	return v.ok
}

// Or returns the value, or def when absent.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}

// IsZero reports whether the value is present and exactly 0.
func (v Value) IsZero() bool {
	return v.ok && v.v == 0
}

func (v Value) String() string {
	if !v.ok {
		return "none"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes an absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = None()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Interval is a manual confidence interval around a point estimate.
type Interval struct {
	Low  float64 `json:"low" toml:"low" yaml:"low"`
	High float64 `json:"high" toml:"high" yaml:"high"`
}

// Metadata annotates a single point.
type Metadata struct {
	Label string            `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Link  string            `json:"link,omitempty" toml:"link,omitempty" yaml:"link,omitempty"`
	Color string            `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Style string            `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
	Node  map[string]string `json:"node,omitempty" toml:"node,omitempty" yaml:"node,omitempty"`
}

// Datum is one point of a series.
type Datum struct {
	Value Value
	CI    *Interval
	Meta  *Metadata
}

// V is shorthand for a present datum without annotations.
func V(v float64) Datum {
	return Datum{Value: Some(v)}
}

// Missing is shorthand for an absent datum.
func Missing() Datum {
	return Datum{}
}

// Values builds a datum slice from plain numbers.
func Values(vs ...float64) []Datum {
	out := make([]Datum, len(vs))
	for i, v := range vs {
		out[i] = V(v)
	}
	return out
}
