package filter

import (
	"math"
	"strconv"
)

// Kind tags the active member of a Value.
type Kind int

// Value kinds.
const (
	KindNone Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindRange:
		return "range"
	default:
		return "none"
	}
}

// Value is a filter operand: string | number | boolean | string list | {from, to}.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
	rng  *bounds
}

type bounds struct {
	from Value
	to   Value
}

// None is the absent value (is_null, is_not_null).
func None() Value { return Value{} }

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List creates a string list value.
func List(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Range creates a {from, to} value. Both ends must be scalars.
func Range(from, to Value) Value {
	return Value{kind: KindRange, rng: &bounds{from: from, to: to}}
}

// Kind returns the active member tag.
func (v Value) Kind() Kind { return v.kind }

// IsScalar reports whether v is a string, number or boolean.
func (v Value) IsScalar() bool {
	return v.kind == KindString || v.kind == KindNumber || v.kind == KindBool
}

// Items returns the list members (nil unless KindList).
func (v Value) Items() []string { return v.list }

// Bounds returns the range ends (zero values unless KindRange).
func (v Value) Bounds() (Value, Value) {
	if v.rng == nil {
		return Value{}, Value{}
	}
	return v.rng.from, v.rng.to
}

// Arg returns the scalar as a driver argument. Integral numbers bind as int64.
func (v Value) Arg() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1<<53 {
			return int64(v.num)
		}
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Text renders the scalar for pattern matching.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}
