package normalization

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"safeCast/internal/modules/coercion/domain"
)

// TextKey marks a JSON/YAML mapping that stands for a textual object:
// {"@text": "..."}.
const TextKey = "@text"

// TextObject is a decoded textual object.
type TextObject string

func (t TextObject) String() string { return string(t) }

// FromAny maps a Go value onto the closed set of value kinds. Values outside
// that set become unsupported rather than being guessed at.
func FromAny(value any) domain.Value {
	switch typed := value.(type) {
	case nil:
		return domain.UnsupportedValue(nil)
	case domain.Value:
		return typed
	case string:
		return domain.StringValue(typed)
	case bool:
		return domain.BooleanValue(typed)
	case int:
		return domain.IntegerValue(int64(typed))
	case int8:
		return domain.IntegerValue(int64(typed))
	case int16:
		return domain.IntegerValue(int64(typed))
	case int32:
		return domain.IntegerValue(int64(typed))
	case int64:
		return domain.IntegerValue(typed)
	case uint:
		return fromUint(uint64(typed), value)
	case uint8:
		return domain.IntegerValue(int64(typed))
	case uint16:
		return domain.IntegerValue(int64(typed))
	case uint32:
		return domain.IntegerValue(int64(typed))
	case uint64:
		return fromUint(typed, value)
	case float32:
		return domain.FloatValue(float64(typed))
	case float64:
		return domain.FloatValue(typed)
	case json.Number:
		return fromNumber(typed)
	case []any:
		return fromSlice(typed)
	case map[string]any:
		return fromMap(typed)
	case fmt.Stringer:
		return domain.ObjectValue(typed)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return domain.StringValue(rv.String())
	case reflect.Bool:
		return domain.BooleanValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.IntegerValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(rv.Uint(), value)
	case reflect.Float32, reflect.Float64:
		return domain.FloatValue(rv.Float())
	case reflect.Slice, reflect.Array:
		items := make([]domain.Value, rv.Len())
		for i := range items {
			items[i] = FromAny(rv.Index(i).Interface())
		}
		return domain.SequenceValue(items...)
	default:
		return domain.UnsupportedValue(value)
	}
}

func fromUint(n uint64, original any) domain.Value {
	if n > math.MaxInt64 {
		return domain.UnsupportedValue(original)
	}
	return domain.IntegerValue(int64(n))
}

// fromNumber keeps integer literals integral. Literals with a fraction or an
// exponent, and integers beyond int64, decode as floats.
func fromNumber(n json.Number) domain.Value {
	if i, err := n.Int64(); err == nil {
		return domain.IntegerValue(i)
	}
	if f, err := n.Float64(); err == nil {
		return domain.FloatValue(f)
	}
	return domain.UnsupportedValue(n)
}

func fromSlice(items []any) domain.Value {
	values := make([]domain.Value, len(items))
	for i, item := range items {
		values[i] = FromAny(item)
	}
	return domain.SequenceValue(values...)
}

func fromMap(m map[string]any) domain.Value {
	if len(m) == 1 {
		if text, ok := m[TextKey].(string); ok {
			return domain.ObjectValue(TextObject(text))
		}
	}
	return domain.UnsupportedValue(m)
}

// AsString coerces value to text under the strict rules.
func AsString(value any) (string, error) {
	return domain.ToString(FromAny(value))
}

// AsInt64 coerces value to an integer under the strict rules.
func AsInt64(value any) (int64, error) {
	return domain.ToInteger(FromAny(value))
}

// AsFloat64 coerces value to a float under the strict rules.
func AsFloat64(value any) (float64, error) {
	return domain.ToFloat(FromAny(value))
}

// AsBool coerces value to a boolean under the strict rules.
func AsBool(value any) (bool, error) {
	return domain.ToBoolean(FromAny(value))
}
