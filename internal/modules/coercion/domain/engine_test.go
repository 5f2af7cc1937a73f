package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

func (l label) String() string { return string(l) }

type opaque struct{ id int }

type tag struct{ name string }

func (t *tag) String() string { return t.name }

func TestToString(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  string
	}{
		{name: "string unchanged", input: StringValue("  keep me "), want: "  keep me "},
		{name: "object text", input: ObjectValue(label("Hello")), want: "Hello"},
		{name: "true", input: BooleanValue(true), want: "1"},
		{name: "false", input: BooleanValue(false), want: "0"},
		{name: "integral float keeps one decimal", input: FloatValue(1.0), want: "1.0"},
		{name: "short decimal", input: FloatValue(1.0001), want: "1.0001"},
		{name: "negative float", input: FloatValue(-2.5), want: "-2.5"},
		{name: "large float", input: FloatValue(1e21), want: "1000000000000000000000.0"},
		{name: "small float", input: FloatValue(0.000125), want: "0.000125"},
		{name: "integer", input: IntegerValue(-42), want: "-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToStringFailures(t *testing.T) {
	inputs := []Value{
		SequenceValue(IntegerValue(1)),
		UnsupportedValue(map[string]any{}),
		UnsupportedValue(nil),
		{},
		FloatValue(math.NaN()),
		FloatValue(math.Inf(1)),
		ObjectValue((*tag)(nil)),
	}
	for _, input := range inputs {
		_, err := ToString(input)
		requireFailure(t, err, input.Kind().String(), "string")
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  float64
	}{
		{name: "float unchanged", input: FloatValue(2.75), want: 2.75},
		{name: "trimmed string", input: StringValue(" 3.14 "), want: 3.14},
		{name: "signed exponent", input: StringValue("-1.5e3"), want: -1500},
		{name: "plus sign", input: StringValue("+7"), want: 7},
		{name: "bare fraction", input: StringValue(".5"), want: 0.5},
		{name: "trailing point", input: StringValue("5."), want: 5},
		{name: "true", input: BooleanValue(true), want: 1},
		{name: "false", input: BooleanValue(false), want: 0},
		{name: "integer widened", input: IntegerValue(12), want: 12},
		{name: "object via text", input: ObjectValue(label("0.25")), want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFloatFailures(t *testing.T) {
	tests := []struct {
		input Value
		kind  string
	}{
		{input: StringValue("abc"), kind: "string"},
		{input: StringValue(""), kind: "string"},
		{input: StringValue("0x1A"), kind: "string"},
		{input: StringValue("1_000"), kind: "string"},
		{input: StringValue("inf"), kind: "string"},
		{input: StringValue("NaN"), kind: "string"},
		{input: StringValue("1e400"), kind: "string"},
		{input: StringValue("1.2.3"), kind: "string"},
		{input: ObjectValue(label("ten")), kind: "string"},
		{input: SequenceValue(), kind: "sequence"},
		{input: UnsupportedValue(opaque{}), kind: "unsupported"},
	}
	for _, tt := range tests {
		_, err := ToFloat(tt.input)
		requireFailure(t, err, tt.kind, "float")
	}
}

func TestToInteger(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  int64
	}{
		{name: "integer unchanged", input: IntegerValue(9), want: 9},
		{name: "plain string", input: StringValue("5"), want: 5},
		{name: "integral decimal string", input: StringValue("5.0"), want: 5},
		{name: "plus sign", input: StringValue("+5"), want: 5},
		{name: "padded", input: StringValue(" 5 "), want: 5},
		{name: "negative", input: StringValue("-12"), want: -12},
		{name: "exponent", input: StringValue("1e3"), want: 1000},
		{name: "fraction cancelled by exponent", input: StringValue("2.5e1"), want: 25},
		{name: "trailing point", input: StringValue("7."), want: 7},
		{name: "zero fraction", input: StringValue(".0"), want: 0},
		{name: "max int64", input: StringValue("9223372036854775807"), want: math.MaxInt64},
		{name: "true", input: BooleanValue(true), want: 1},
		{name: "false", input: BooleanValue(false), want: 0},
		{name: "integral float", input: FloatValue(5.0), want: 5},
		{name: "negative integral float", input: FloatValue(-3.0), want: -3},
		{name: "object via text", input: ObjectValue(label("64")), want: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInteger(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToIntegerFailures(t *testing.T) {
	tests := []struct {
		input Value
		kind  string
	}{
		{input: StringValue("5.5"), kind: "string"},
		{input: StringValue("1.00000000000000001"), kind: "string"},
		{input: StringValue("9223372036854775808"), kind: "string"},
		{input: StringValue("1e999999"), kind: "string"},
		{input: StringValue("1e-3"), kind: "string"},
		{input: StringValue("five"), kind: "string"},
		{input: FloatValue(5.5), kind: "float"},
		{input: FloatValue(math.NaN()), kind: "float"},
		{input: FloatValue(math.Inf(-1)), kind: "float"},
		{input: FloatValue(1e19), kind: "float"},
		{input: ObjectValue(label("1.5")), kind: "string"},
		{input: SequenceValue(IntegerValue(1)), kind: "sequence"},
		{input: UnsupportedValue(nil), kind: "unsupported"},
	}
	for _, tt := range tests {
		_, err := ToInteger(tt.input)
		requireFailure(t, err, tt.kind, "integer")
	}
}

func TestToBoolean(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  bool
	}{
		{name: "boolean unchanged", input: BooleanValue(true), want: true},
		{name: "true literal", input: StringValue("true"), want: true},
		{name: "upper true", input: StringValue("TRUE"), want: true},
		{name: "mixed false", input: StringValue("FaLsE"), want: false},
		{name: "one", input: StringValue("1"), want: true},
		{name: "zero", input: StringValue("0"), want: false},
		{name: "integer one", input: IntegerValue(1), want: true},
		{name: "integer zero", input: IntegerValue(0), want: false},
		{name: "float one", input: FloatValue(1.0), want: true},
		{name: "float zero", input: FloatValue(0.0), want: false},
		{name: "negative zero", input: FloatValue(math.Copysign(0, -1)), want: false},
		{name: "object via text", input: ObjectValue(label("True")), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBoolean(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBooleanFailures(t *testing.T) {
	tests := []struct {
		input Value
		kind  string
	}{
		{input: StringValue("2"), kind: "string"},
		{input: StringValue("yes"), kind: "string"},
		{input: StringValue(" true"), kind: "string"},
		{input: StringValue(""), kind: "string"},
		{input: IntegerValue(2), kind: "integer"},
		{input: IntegerValue(-1), kind: "integer"},
		{input: FloatValue(1.0000001), kind: "float"},
		{input: FloatValue(0.5), kind: "float"},
		{input: ObjectValue(label("on")), kind: "string"},
		{input: SequenceValue(), kind: "sequence"},
		{input: UnsupportedValue(opaque{id: 1}), kind: "unsupported"},
		{input: ObjectValue((*tag)(nil)), kind: "unsupported"},
	}
	for _, tt := range tests {
		_, err := ToBoolean(tt.input)
		requireFailure(t, err, tt.kind, "boolean")
	}
}

func TestFailureCarriesTriple(t *testing.T) {
	_, err := ToInteger(StringValue("5.5"))
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, &CoercionFailure{SourceKind: "string", SourceRendering: `"5.5"`, TargetType: "integer"}, failure)
	assert.True(t, errors.Is(err, ErrCoercion))
	assert.Equal(t, `cannot coerce string "5.5" to integer`, err.Error())

	_, err = ToFloat(UnsupportedValue(opaque{}))
	failure, ok = AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "domain.opaque", failure.SourceRendering)

	_, err = ToBoolean(StringValue(""))
	failure, ok = AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, `""`, failure.SourceRendering)
}

func TestTypedNilObjectIsUnsupported(t *testing.T) {
	v := ObjectValue((*tag)(nil))
	require.Equal(t, KindUnsupported, v.Kind())
	assert.Equal(t, "*domain.tag", v.Render())

	data, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	_, err = ToString(v)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, &CoercionFailure{SourceKind: "unsupported", SourceRendering: "*domain.tag", TargetType: "string"}, failure)
}

func TestCoerce(t *testing.T) {
	got, err := Coerce(StringValue("5.0"), TargetInteger)
	require.NoError(t, err)
	assert.Equal(t, KindInteger, got.Kind())
	assert.Equal(t, int64(5), got.Raw())

	got, err = Coerce(IntegerValue(1), TargetBoolean)
	require.NoError(t, err)
	assert.Equal(t, true, got.Raw())

	got, err = Coerce(FloatValue(2), TargetString)
	require.NoError(t, err)
	assert.Equal(t, "2.0", got.Raw())

	got, err = Coerce(BooleanValue(true), TargetFloat)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Raw())

	_, err = Coerce(IntegerValue(1), TargetCollection)
	requireFailure(t, err, "integer", "collection")

	_, err = Coerce(IntegerValue(1), "")
	requireFailure(t, err, "integer", "unknown")
}

func TestIdentityCoercionIsIdempotent(t *testing.T) {
	for _, n := range []int64{0, 1, -7, math.MaxInt64, math.MinInt64} {
		once, err := ToInteger(IntegerValue(n))
		require.NoError(t, err)
		twice, err := ToInteger(IntegerValue(once))
		require.NoError(t, err)
		assert.Equal(t, n, twice)
	}
	for _, s := range []string{"", "abc", " 5 "} {
		once, err := ToString(StringValue(s))
		require.NoError(t, err)
		twice, err := ToString(StringValue(once))
		require.NoError(t, err)
		assert.Equal(t, s, twice)
	}
	for _, f := range []float64{0, 1.5, -1e-9} {
		once, err := ToFloat(FloatValue(f))
		require.NoError(t, err)
		assert.Equal(t, f, once)
	}
	for _, b := range []bool{true, false} {
		once, err := ToBoolean(BooleanValue(b))
		require.NoError(t, err)
		assert.Equal(t, b, once)
	}
}

func requireFailure(t *testing.T, err error, kind, target string) {
	t.Helper()
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok, "expected *CoercionFailure, got %T", err)
	assert.Equal(t, kind, failure.SourceKind)
	assert.Equal(t, target, failure.TargetType)
	assert.NotEmpty(t, failure.SourceRendering)
}
