package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	t.Run("creates quantity with valid value", func(t *testing.T) {
		q, err := NewQuantity(decimal.NewFromFloat(10.5))
		require.NoError(t, err)
		assert.True(t, q.Amount().Equal(decimal.NewFromFloat(10.5)))
	})

	t.Run("returns error for negative quantity", func(t *testing.T) {
		_, err := NewQuantity(decimal.NewFromFloat(-5))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("allows zero quantity", func(t *testing.T) {
		q, err := NewQuantity(decimal.Zero)
		require.NoError(t, err)
		assert.True(t, q.IsZero())
	})
}

func TestNewQuantityFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		q, err := NewQuantityFromString("50.25")
		require.NoError(t, err)
		assert.True(t, q.Amount().Equal(decimal.NewFromFloat(50.25)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewQuantityFromString("abc")
		assert.Error(t, err)
	})

	t.Run("negative string", func(t *testing.T) {
		_, err := NewQuantityFromString("-1")
		assert.Error(t, err)
	})
}

func TestQuantityAddSubtract(t *testing.T) {
	a := MustNewQuantityFromInt(10)
	b := MustNewQuantityFromInt(4)

	assert.True(t, a.Add(b).Amount().Equal(decimal.NewFromInt(14)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6)))

	t.Run("subtract below zero fails", func(t *testing.T) {
		_, err := b.Subtract(a)
		assert.Error(t, err)
	})

	t.Run("subtract clamped stops at zero", func(t *testing.T) {
		result := b.SubtractClamped(a)
		assert.True(t, result.IsZero())
	})
}

func TestQuantityMultiplyDivide(t *testing.T) {
	q := MustNewQuantityFromInt(6)

	doubled, err := q.Multiply(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(12)))

	half, err := q.Divide(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, half.Amount().Equal(decimal.NewFromInt(3)))

	t.Run("divide by zero fails", func(t *testing.T) {
		_, err := q.Divide(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestQuantityRound(t *testing.T) {
	q, err := NewQuantityFromString("1.23456")
	require.NoError(t, err)
	assert.Equal(t, "1.2346", q.Round(4).Amount().String())
}

func TestQuantityMin(t *testing.T) {
	small := MustNewQuantityFromInt(2)
	big := MustNewQuantityFromInt(5)
	assert.True(t, small.Min(big).Equals(small))
	assert.True(t, big.Min(small).Equals(small))
}

func TestQuantityComparisons(t *testing.T) {
	small := MustNewQuantityFromInt(1)
	big := MustNewQuantityFromInt(2)

	assert.True(t, small.LessThan(big))
	assert.True(t, small.LessThanOrEqual(small))
	assert.True(t, big.GreaterThan(small))
	assert.True(t, big.GreaterThanOrEqual(big))
	assert.True(t, small.Equals(MustNewQuantityFromInt(1)))
}

func TestQuantityJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		q, _ := NewQuantityFromString("2.5")
		data, err := json.Marshal(q)
		require.NoError(t, err)
		assert.Equal(t, `"2.5"`, string(data))
	})

	t.Run("unmarshal string", func(t *testing.T) {
		var q Quantity
		require.NoError(t, json.Unmarshal([]byte(`"3.25"`), &q))
		assert.True(t, q.Amount().Equal(decimal.NewFromFloat(3.25)))
	})

	t.Run("unmarshal bare number", func(t *testing.T) {
		var q Quantity
		require.NoError(t, json.Unmarshal([]byte(`7`), &q))
		assert.True(t, q.Amount().Equal(decimal.NewFromInt(7)))
	})

	t.Run("unmarshal negative fails", func(t *testing.T) {
		var q Quantity
		assert.Error(t, json.Unmarshal([]byte(`"-1"`), &q))
	})
}

func TestQuantityScan(t *testing.T) {
	t.Run("scan string", func(t *testing.T) {
		var q Quantity
		require.NoError(t, q.Scan("20"))
		assert.True(t, q.Amount().Equal(decimal.NewFromInt(20)))
	})

	t.Run("scan nil yields zero", func(t *testing.T) {
		var q Quantity
		require.NoError(t, q.Scan(nil))
		assert.True(t, q.IsZero())
	})

	t.Run("scan unsupported type fails", func(t *testing.T) {
		var q Quantity
		assert.Error(t, q.Scan(3.5))
	})
}

func TestQuantityValue(t *testing.T) {
	q := MustNewQuantityFromInt(18)
	v, err := q.Value()
	require.NoError(t, err)
	assert.Equal(t, "18", v)
}
