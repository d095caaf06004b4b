package envcheck

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBoolean(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", "Yes", "on", "ON"} {
		assert.True(t, ToBoolean(v), v)
	}
	for _, v := range []string{"false", "0", "no", "off", "maybe", "", "2"} {
		assert.False(t, ToBoolean(v), v)
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"42", 42},
		{"-3.5", -3.5},
		{" 7 ", 7},
		{"1e3", 1000},
		{"0x1F", 31},
		{"0b101", 5},
		{"0o17", 15},
		{"017", 17},
		{"", 0},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"1e400", math.Inf(1)},
		{"-1e400", math.Inf(-1)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToNumber(tt.value), tt.value)
	}

	for _, v := range []string{"abc", "12px", "NaN", "inf", "-0x10", "1_000"} {
		assert.True(t, math.IsNaN(ToNumber(v)), v)
	}
}

func TestStringTransforms(t *testing.T) {
	assert.Equal(t, "debug", ToLowerCase("DeBuG"))
	assert.Equal(t, "DEBUG", ToUpperCase("DeBuG"))
	assert.Equal(t, "value", Trim("  value\t\n"))
}

func TestToArray(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ToArray("a,b,c"))
	assert.Equal(t, []string{"a", "b", "c"}, ToArray(" a , b ,c "))
	assert.Equal(t, []string{""}, ToArray(""))
	assert.Equal(t, []string{"a", "b"}, ToArray("a;b", ";"))
	assert.Equal(t, []string{"a", "", "b"}, ToArray("a,,b"))
}

func TestToObject(t *testing.T) {
	assert.Equal(t, "{not json}", ToObject("{not json}"))
	assert.Equal(t, map[string]any{"a": float64(1)}, ToObject(`{"a":1}`))
	assert.Equal(t, []any{"x", "y"}, ToObject(`["x","y"]`))
	assert.Equal(t, "plain", ToObject("plain"))
}

func TestTransformer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"lowerCase", "ABC", "abc"},
		{"toLowerCase", "ABC", "abc"},
		{"upperCase", "abc", "ABC"},
		{"toUpperCase", "abc", "ABC"},
		{"trim", " x ", "x"},
		{"toNumber", "12", float64(12)},
		{"toBoolean", "on", true},
		{"toArray", "a,b", []string{"a", "b"}},
		{"toObject", `{"k":"v"}`, map[string]any{"k": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Transformer(tt.name)
			require.NoError(t, err)
			got, err := fn(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Transformer("toDate")
	assert.True(t, errors.Is(err, ErrUnknownTransform))
}

func TestStrictTransforms(t *testing.T) {
	n, err := StrictNumber("8080")
	require.NoError(t, err)
	assert.Equal(t, float64(8080), n)

	_, err = StrictNumber("eighty")
	assert.Error(t, err)

	b, err := StrictBoolean("OFF")
	require.NoError(t, err)
	assert.Equal(t, false, b)

	_, err = StrictBoolean("maybe")
	assert.Error(t, err)
}
