package numerical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"  42 ", 42},
		{"-0.25", -0.25},
		{"1e21", 1e20},
		{"-1e21", -1e20},
		{"1e400", 1e20},
		{"-1e400", -1e20},
		{"NaN", 0},
		{"+Inf", 1e20},
		{"-Inf", -1e20},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Float64())
		})
	}
}

func TestParseRejectsMalformedText(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "12x"} {
		_, err := Parse(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrSyntax)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.Equal(t, 2.0, MustParse("2").Float64())
}

func TestTextRoundTrip(t *testing.T) {
	text, err := New(1e21).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1e+20", string(text))

	var r BoundedReal
	require.NoError(t, r.UnmarshalText(text))
	assert.Equal(t, 1e20, r.Float64())
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		X BoundedReal `json:"x"`
		Y BoundedReal `json:"y"`
	}{X: New(1024), Y: New(-1e30)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1024,"y":-1e20}`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	type doc struct {
		X BoundedReal `json:"x"`
	}

	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `{"x":0.25}`, 0.25},
		{"large number saturates", `{"x":1e300}`, 1e20},
		{"string", `{"x":"1e21"}`, 1e20},
		{"string nan", `{"x":"NaN"}`, 0},
		{"null keeps zero value", `{"x":null}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d doc
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, d.X.Float64())
		})
	}
}

func TestUnmarshalJSONRejectsNonNumbers(t *testing.T) {
	var r BoundedReal
	err := json.Unmarshal([]byte(`true`), &r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)

	err = json.Unmarshal([]byte(`"ten"`), &r)
	assert.ErrorIs(t, err, ErrSyntax)
}
