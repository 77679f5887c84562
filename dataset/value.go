package dataset

import (
	"math"
	"strconv"
)

// ValueKind tells which field of a Value is set.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumerical
	KindCategorical
	KindBoolean
)

// Value is one feature value of a row. The zero Value is missing.
type Value struct {
	kind ValueKind
	num  float64
	cat  int
	b    bool
}

// NumericalValue returns a numerical value. NaN is a missing value.
func NumericalValue(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: KindNumerical, num: v}
}

// CategoricalValue returns a categorical value. Negative values are missing.
func CategoricalValue(v int) Value {
	if v < 0 {
		return Value{}
	}
	return Value{kind: KindCategorical, cat: v}
}

// BooleanValue returns a boolean value.
func BooleanValue(v bool) Value {
	return Value{kind: KindBoolean, b: v}
}

// MissingValue returns a missing value.
func MissingValue() Value {
	return Value{}
}

// Kind returns the kind of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing reports whether v is missing.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns v as a float64: the number, the category index, or 0/1 for
// booleans. Missing values return NaN.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumerical:
		return v.num
	case KindCategorical:
		return float64(v.cat)
	case KindBoolean:
		if v.b {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// Int returns v as a category index. Missing values return -1.
func (v Value) Int() int {
	switch v.kind {
	case KindCategorical:
		return v.cat
	case KindNumerical:
		return int(v.num)
	case KindBoolean:
		if v.b {
			return 1
		}
		return 0
	default:
		return -1
	}
}

// Bool returns v as a boolean. Missing values return false.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindNumerical:
		return v.num != 0
	case KindCategorical:
		return v.cat != 0
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNumerical:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindCategorical:
		return strconv.Itoa(v.cat)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	default:
		return "NA"
	}
}
