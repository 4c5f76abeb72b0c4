package model

import (
	"strconv"
	"time"
)

// Value is a single cell. Null cells carry no payload; otherwise exactly one
// payload field is meaningful, selected by Kind.
type Value struct {
	Kind  DType
	Null  bool
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Time  time.Time
}

// NullValue returns a null cell.
func NullValue() Value { return Value{Null: true} }

func IntValue(i int64) Value      { return Value{Kind: DTypeInteger, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: DTypeFloat, Float: f} }
func TextValue(s string) Value    { return Value{Kind: DTypeText, Str: s} }
func BoolValue(b bool) Value      { return Value{Kind: DTypeBoolean, Bool: b} }
func TimeValue(t time.Time) Value { return Value{Kind: DTypeDatetime, Time: t} }

// AsFloat returns the numeric payload as a float64. ok is false for
// non-numeric or null values.
func (v Value) AsFloat() (float64, bool) {
	if v.Null {
		return 0, false
	}
	switch v.Kind {
	case DTypeInteger:
		return float64(v.Int), true
	case DTypeFloat:
		return v.Float, true
	}
	return 0, false
}

// Equal compares two cells as loaded. Two nulls are equal, integers and
// floats compare numerically, and values of unrelated kinds never match.
func (v Value) Equal(o Value) bool {
	if v.Null || o.Null {
		return v.Null == o.Null
	}
	if v.Kind.Numeric() && o.Kind.Numeric() {
		if v.Kind == DTypeInteger && o.Kind == DTypeInteger {
			return v.Int == o.Int
		}
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()
		return a == b
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case DTypeText:
		return v.Str == o.Str
	case DTypeBoolean:
		return v.Bool == o.Bool
	case DTypeDatetime:
		return v.Time.Equal(o.Time)
	}
	return false
}

// String renders the cell for messages: text is quoted so "3" and 3 stay
// distinguishable, nulls print as nan.
func (v Value) String() string {
	if v.Null {
		return "nan"
	}
	switch v.Kind {
	case DTypeInteger:
		return strconv.FormatInt(v.Int, 10)
	case DTypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case DTypeText:
		return strconv.Quote(v.Str)
	case DTypeBoolean:
		if v.Bool {
			return "True"
		}
		return "False"
	case DTypeDatetime:
		return v.Time.Format(time.RFC3339Nano)
	}
	return "?"
}
