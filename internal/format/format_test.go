package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Value(t *testing.T) {
	testCases := []struct {
		name   string
		input  float64
		expect string
	}{
		{name: "integer", input: 5, expect: "5"},
		{name: "negative integer", input: -3, expect: "-3"},
		{name: "zero", input: 0, expect: "0"},
		{name: "fraction", input: 0.125, expect: "0.125"},
		{name: "nan", input: math.NaN(), expect: "NaN"},
		{name: "positive infinity", input: math.Inf(1), expect: "+Inf"},
		{name: "negative infinity", input: math.Inf(-1), expect: "-Inf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Value(tc.input))
		})
	}
}

func Test_Truncated_longValuesGetEllipsis(t *testing.T) {
	v := 1.0 / 3.0
	out := Truncated(v)
	assert.LessOrEqual(t, len(out), len(Value(v)))
	if len(Value(v)) > 12 {
		assert.Contains(t, out, "…")
	}
}
