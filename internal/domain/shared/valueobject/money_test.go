package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", USD)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	hundred := NewMoneyUSD(decimal.NewFromInt(100))
	fifty := NewMoneyUSD(decimal.NewFromInt(50))

	t.Run("add", func(t *testing.T) {
		sum, err := hundred.Add(fifty)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := hundred.Subtract(fifty)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(50)))
	})

	t.Run("add rejects currency mismatch", func(t *testing.T) {
		other, _ := NewMoney(decimal.NewFromInt(10), EUR)
		_, err := hundred.Add(other)
		assert.Error(t, err)
	})

	t.Run("divide by zero", func(t *testing.T) {
		_, err := hundred.Divide(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("no floating drift on repeated cents", func(t *testing.T) {
		cent, _ := NewMoneyFromString("0.01", USD)
		total := Zero(USD)
		for range 100 {
			var err error
			total, err = total.Add(cent)
			require.NoError(t, err)
		}
		assert.True(t, total.Equals(NewMoneyUSD(decimal.NewFromInt(1))))
	})
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(30))
	b := NewMoneyUSD(decimal.NewFromInt(40))

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, a.Equals(NewMoneyUSD(decimal.NewFromInt(30))))
	assert.False(t, a.Equals(b))

	other, _ := NewMoney(decimal.NewFromInt(30), GBP)
	_, err = a.LessThan(other)
	assert.Error(t, err)
	assert.False(t, a.Equals(other))
}

func TestMoneyJSON(t *testing.T) {
	m, _ := NewMoneyFromString("95.00", USD)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(12.5))
	assert.Equal(t, "12.50 USD", m.String())
}
