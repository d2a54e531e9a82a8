package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("valid amounts", func(t *testing.T) {
		cases := map[string]int64{
			"0":       0,
			"0.5":     50,
			"1":       100,
			"200.00":  20000,
			"1234.56": 123456,
			"0.01":    1,
		}
		for input, want := range cases {
			got, err := Parse(input)
			assert.NoError(t, err, input)
			assert.Equal(t, want, got.MinorUnits(), input)
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		_, err := Parse("-10.00")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("too many fractional digits", func(t *testing.T) {
		_, err := Parse("10.001")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("not a number", func(t *testing.T) {
		for _, input := range []string{"", "abc", "10,00", "1e", "--1"} {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidAmount, input)
		}
	})
}

func TestArithmetic(t *testing.T) {
	a := FromMinorUnits(100000) // 1000.00
	b := FromMinorUnits(20000)  // 200.00

	assert.Equal(t, int64(120000), a.Add(b).MinorUnits())
	assert.Equal(t, int64(80000), a.Sub(b).MinorUnits())
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))

	// Sub does not clamp.
	neg := b.Sub(a)
	assert.True(t, neg.IsNegative())
	assert.Equal(t, int64(-80000), neg.MinorUnits())
}

func TestString(t *testing.T) {
	assert.Equal(t, "800.00", FromMinorUnits(80000).String())
	assert.Equal(t, "0.05", FromMinorUnits(5).String())
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "-0.05", FromMinorUnits(-5).String())
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(FromMinorUnits(70000))
	assert.NoError(t, err)
	assert.Equal(t, `"700.00"`, string(data))

	var m Money
	assert.NoError(t, json.Unmarshal([]byte(`"50.25"`), &m))
	assert.Equal(t, int64(5025), m.MinorUnits())

	assert.NoError(t, json.Unmarshal([]byte(`120`), &m))
	assert.Equal(t, int64(12000), m.MinorUnits())

	assert.Error(t, json.Unmarshal([]byte(`"1.999"`), &m))
}
