package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Value is a tagged input value. Exactly one payload field is meaningful,
// selected by kind. The zero Value is an unsupported nil.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bit  bool
	obj  fmt.Stringer
	seq  []Value
	raw  any
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func IntegerValue(i int64) Value { return Value{kind: KindInteger, num: i} }

func FloatValue(f float64) Value { return Value{kind: KindFloat, flt: f} }

func BooleanValue(b bool) Value { return Value{kind: KindBoolean, bit: b} }

// ObjectValue wraps a value with a textual representation. A nil Stringer,
// including a typed nil pointer, map, slice or func, yields an unsupported
// value.
func ObjectValue(o fmt.Stringer) Value {
	if o == nil {
		return Value{kind: KindUnsupported}
	}
	if isNilRef(o) {
		return Value{kind: KindUnsupported, raw: o}
	}
	return Value{kind: KindObject, obj: o}
}

func isNilRef(o any) bool {
	rv := reflect.ValueOf(o)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// SequenceValue holds items in their original order. The slice is copied.
func SequenceValue(items ...Value) Value {
	return Value{kind: KindSequence, seq: append([]Value(nil), items...)}
}

// UnsupportedValue keeps raw only so failures can name its type.
func UnsupportedValue(raw any) Value { return Value{kind: KindUnsupported, raw: raw} }

func (v Value) Kind() Kind { return v.kind }

// Items returns a copy of the sequence items, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return append([]Value(nil), v.seq...)
}

// Raw returns the Go representation of the payload: string, int64, float64,
// bool, fmt.Stringer, []Value or the original unsupported value.
func (v Value) Raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindFloat:
		return v.flt
	case KindBoolean:
		return v.bit
	case KindObject:
		return v.obj
	case KindSequence:
		return v.Items()
	default:
		return v.raw
	}
}

// Render is the human readable form reported in failures. It is never empty.
func (v Value) Render() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.bit)
	case KindObject:
		if text := v.obj.String(); text != "" {
			return text
		}
		return fmt.Sprintf("%T", v.obj)
	case KindSequence:
		return fmt.Sprintf("sequence(%d)", len(v.seq))
	default:
		if v.raw == nil {
			return "nil"
		}
		return fmt.Sprintf("%T", v.raw)
	}
}

// MarshalJSON encodes floats with FormatFloat so integral floats keep their
// decimal point. Non-finite floats and unsupported values encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInteger:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return []byte("null"), nil
		}
		return []byte(FormatFloat(v.flt)), nil
	case KindBoolean:
		return json.Marshal(v.bit)
	case KindObject:
		return json.Marshal(v.obj.String())
	case KindSequence:
		if v.seq == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.seq)
	default:
		return []byte("null"), nil
	}
}
