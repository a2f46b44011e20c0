package caltab

import (
	"fmt"
	"math"
	"strconv"
)

// Value is one typed constant value. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind
	U    uint64
	I    int64
	F    float64
	B    bool
}

// UintValue builds an unsigned integer value of the given kind.
func UintValue(k Kind, v uint64) Value { return Value{Kind: k, U: v} }

// IntValue builds a signed integer value of the given kind.
func IntValue(k Kind, v int64) Value { return Value{Kind: k, I: v} }

// FloatValue builds a single-precision float value.
func FloatValue(v float64) Value { return Value{Kind: F32, F: v} }

// BoolValue builds a flag value.
func BoolValue(v bool) Value { return Value{Kind: Bool, B: v} }

// Float returns the numeric view of the value, used as formula input.
// Flags read as 0 or 1.
func (v Value) Float() float64 {
	switch v.Kind {
	case U8, U16, U32:
		return float64(v.U)
	case I16, I32:
		return float64(v.I)
	case F32:
		return v.F
	case Bool:
		if v.B {
			return 1
		}
		return 0
	}
	return 0
}

// Equal reports bit-identical equality of two values.
func (v Value) Equal(o Value) bool {
	return v.Kind == o.Kind && v.U == o.U && v.I == o.I && v.B == o.B &&
		math.Float64bits(v.F) == math.Float64bits(o.F)
}

func (v Value) String() string {
	switch v.Kind {
	case U8, U16, U32:
		return strconv.FormatUint(v.U, 10)
	case I16, I32:
		return strconv.FormatInt(v.I, 10)
	case F32:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.B)
	}
	return "<invalid>"
}

// FromFloat converts a computed numeric result into a value of the given
// kind. Integer kinds round to nearest and reject out-of-range results.
func FromFloat(k Kind, f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("non-finite value %v", f)
	}
	switch k {
	case F32:
		return FloatValue(f), nil
	case Bool:
		return BoolValue(f != 0), nil
	}
	r := math.Round(f)
	min, max := k.bounds()
	if r < min || r > max {
		return Value{}, fmt.Errorf("%v out of %s range [%v, %v]", f, k, min, max)
	}
	switch k {
	case U8, U16, U32:
		return UintValue(k, uint64(r)), nil
	case I16, I32:
		return IntValue(k, int64(r)), nil
	}
	return Value{}, fmt.Errorf("cannot convert to kind %s", k)
}

// ParseLiteral parses a literal constant as written in dataset documents.
// Flags accept true/false, set/clear and 1/0.
func ParseLiteral(k Kind, raw string) (Value, error) {
	switch k {
	case Bool:
		switch raw {
		case "true", "set", "1":
			return BoolValue(true), nil
		case "false", "clear", "0":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("invalid flag literal %q", raw)
	case F32:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float literal %q", raw)
		}
		return FloatValue(f), nil
	case U8, U16, U32:
		u, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid unsigned literal %q", raw)
		}
		if _, max := k.bounds(); float64(u) > max {
			return Value{}, fmt.Errorf("literal %q out of %s range", raw, k)
		}
		return UintValue(k, u), nil
	case I16, I32:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid signed literal %q", raw)
		}
		if min, max := k.bounds(); float64(i) < min || float64(i) > max {
			return Value{}, fmt.Errorf("literal %q out of %s range", raw, k)
		}
		return IntValue(k, i), nil
	}
	return Value{}, fmt.Errorf("cannot parse literal for kind %s", k)
}
