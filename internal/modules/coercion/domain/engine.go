package domain

import (
	"math"
	"strconv"
	"strings"
)

// int64 bounds as floats; 2^63 itself is out of range.
const (
	minIntFloat = -9223372036854775808.0
	maxIntFloat = 9223372036854775808.0
)

// ToString converts v to text. Booleans render as "1" and "0", floats with
// FormatFloat. Non-finite floats, sequences and unsupported values fail.
func ToString(v Value) (string, error) {
	switch v.Kind() {
	case KindString:
		return v.str, nil
	case KindObject:
		return v.obj.String(), nil
	case KindBoolean:
		if v.bit {
			return "1", nil
		}
		return "0", nil
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return "", newFailure(v, TargetString.String())
		}
		return FormatFloat(v.flt), nil
	case KindInteger:
		return strconv.FormatInt(v.num, 10), nil
	default:
		return "", newFailure(v, TargetString.String())
	}
}

// ToFloat converts v to a float64. Strings are trimmed and must be numeric literals.
func ToFloat(v Value) (float64, error) {
	switch v.Kind() {
	case KindFloat:
		return v.flt, nil
	case KindString:
		if f, ok := parseFloatLiteral(v.str); ok {
			return f, nil
		}
		return 0, newFailure(v, TargetFloat.String())
	case KindBoolean:
		if v.bit {
			return 1, nil
		}
		return 0, nil
	case KindInteger:
		return float64(v.num), nil
	case KindObject:
		return ToFloat(StringValue(v.obj.String()))
	default:
		return 0, newFailure(v, TargetFloat.String())
	}
}

// ToInteger converts v to an int64. Strings and floats qualify only when they
// have no fractional part and fit in an int64.
func ToInteger(v Value) (int64, error) {
	switch v.Kind() {
	case KindInteger:
		return v.num, nil
	case KindString:
		if n, ok := parseIntegerLiteral(v.str); ok {
			return n, nil
		}
		return 0, newFailure(v, TargetInteger.String())
	case KindBoolean:
		if v.bit {
			return 1, nil
		}
		return 0, nil
	case KindFloat:
		if math.Floor(v.flt) != v.flt || v.flt < minIntFloat || v.flt >= maxIntFloat {
			return 0, newFailure(v, TargetInteger.String())
		}
		return int64(v.flt), nil
	case KindObject:
		return ToInteger(StringValue(v.obj.String()))
	default:
		return 0, newFailure(v, TargetInteger.String())
	}
}

// ToBoolean converts v to a bool. Strings match "1", "true", "0" and "false"
// case-insensitively without trimming; numbers must be exactly 1 or 0.
func ToBoolean(v Value) (bool, error) {
	switch v.Kind() {
	case KindBoolean:
		return v.bit, nil
	case KindString:
		switch strings.ToLower(v.str) {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
		return false, newFailure(v, TargetBoolean.String())
	case KindInteger:
		switch v.num {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
		return false, newFailure(v, TargetBoolean.String())
	case KindFloat:
		switch v.flt {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
		return false, newFailure(v, TargetBoolean.String())
	case KindObject:
		return ToBoolean(StringValue(v.obj.String()))
	default:
		return false, newFailure(v, TargetBoolean.String())
	}
}

// Coerce applies the conversion named by target and wraps the result.
// TargetCollection is not a scalar target; use Classify.
func Coerce(v Value, target Target) (Value, error) {
	switch target {
	case TargetString:
		s, err := ToString(v)
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case TargetFloat:
		f, err := ToFloat(v)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	case TargetInteger:
		n, err := ToInteger(v)
		if err != nil {
			return Value{}, err
		}
		return IntegerValue(n), nil
	case TargetBoolean:
		b, err := ToBoolean(v)
		if err != nil {
			return Value{}, err
		}
		return BooleanValue(b), nil
	default:
		name := string(target)
		if name == "" {
			name = "unknown"
		}
		return Value{}, newFailure(v, name)
	}
}
