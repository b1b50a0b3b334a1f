package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantMinor int64
		wantErr   bool
	}{
		{name: "integer", input: "500", wantMinor: 50000},
		{name: "dot separator", input: "12.50", wantMinor: 1250},
		{name: "comma separator", input: "12,50", wantMinor: 1250},
		{name: "rounding up", input: "0.005", wantMinor: 1},
		{name: "extra precision", input: "1.999", wantMinor: 200},
		{name: "surrounding spaces", input: " 3.10 ", wantMinor: 310},
		{name: "garbage", input: "дорого", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := Parse(c.input)
			if c.wantErr {
				require.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantMinor, m.Minor())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := FromMinor(1250)
	b := FromMinor(499)

	// a + b - b == a
	assert.True(t, a.Add(b).Sub(b).Equal(a))

	assert.Equal(t, int64(2500), a.MulInt(2).Minor())
	assert.Equal(t, int64(625), a.DivInt(2).Minor())
	assert.Equal(t, int64(-1250), a.Neg().Minor())

	// деление с округлением вниз, в том числе для отрицательных значений
	assert.Equal(t, int64(-417), FromMinor(-1250).DivInt(3).Minor())
	assert.Equal(t, int64(416), FromMinor(1250).DivInt(3).Minor())
}

func TestOrdering(t *testing.T) {
	assert.Equal(t, -1, FromMinor(1).Cmp(FromMinor(2)))
	assert.Equal(t, 1, FromMinor(2).Cmp(FromMinor(1)))
	assert.Equal(t, 0, FromMinor(2).Cmp(FromMinor(2)))
	assert.True(t, FromMinor(0).IsZero())
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []int64{0, 1, 99, 100, 1250, 100000, -1250}
	for _, v := range values {
		m := FromMinor(v)
		parsed, err := Parse(m.String())
		require.NoError(t, err)
		assert.True(t, parsed.Equal(m), "round trip for %s", m)
	}
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, int64(1250), FromFloat(12.5).Minor())
	assert.Equal(t, int64(1), FromFloat(0.005).Minor())
}
