package quotes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPrice_MulBase(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	value, err := pair.NewPrice(50000).MulBase(pair.NewBaseAsset(0.1))
	require.NoError(t, err)
	require.Equal(t, "USD", value.Symbol())
	require.True(t, value.Amount().Equal(decimal.RequireFromString("5000")))

	eth := mustPair(t, "ETH/USD")
	_, err = pair.NewPrice(50000).MulBase(eth.NewBaseAsset(0.1))
	require.ErrorIs(t, err, ErrPairMismatch)
}

func TestPrice_AddSubSamePair(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	sum, err := pair.NewPrice(49000).Add(pair.NewPrice(1000))
	require.NoError(t, err)
	require.True(t, sum.Value().Equal(decimal.RequireFromString("50000")))

	diff, err := sum.Sub(pair.NewPrice(500))
	require.NoError(t, err)
	require.True(t, diff.Value().Equal(decimal.RequireFromString("49500")))

	eur := mustPair(t, "BTC/EUR")
	_, err = sum.Add(eur.NewPrice(1))
	require.ErrorIs(t, err, ErrPairMismatch)
}

func TestPrice_WithinPercent(t *testing.T) {
	pair := mustPair(t, "BTC/USDT")
	price := pair.NewPrice(100)

	tests := []struct {
		name      string
		other     Price
		tolerance float64
		want      bool
	}{
		{name: "2% above within 5%", other: pair.NewPrice(102), tolerance: 0.05, want: true},
		{name: "2% above within 2%", other: pair.NewPrice(102), tolerance: 0.02, want: true},
		{name: "2% above outside 1%", other: pair.NewPrice(102), tolerance: 0.01, want: false},
		{name: "2% below within 5%", other: pair.NewPrice(98), tolerance: 0.05, want: true},
		{name: "2% below outside 1%", other: pair.NewPrice(98), tolerance: 0.01, want: false},
		{name: "zero target far away", other: pair.ZeroPrice(), tolerance: 0.05, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := price.WithinPercent(tt.other, tt.tolerance)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	// zero receiver would divide by zero
	_, err := pair.ZeroPrice().WithinPercent(price, 0.05)
	require.ErrorIs(t, err, ErrDivisionByZero)

	eth := mustPair(t, "ETH/USDT")
	_, err = price.WithinPercent(eth.NewPrice(100), 0.05)
	require.ErrorIs(t, err, ErrPairMismatch)
}

func TestPrice_ApplyPercent(t *testing.T) {
	pair := mustPair(t, "BTC/USDT")
	price := pair.NewPrice(100)

	up, err := price.ApplyPercent(0.10)
	require.NoError(t, err)
	require.True(t, up.Value().Equal(decimal.RequireFromString("110")))
	require.Equal(t, "BTC", up.BaseSymbol())
	require.Equal(t, "USDT", up.QuoteSymbol())

	down, err := price.ApplyPercent(-0.10)
	require.NoError(t, err)
	require.True(t, down.Value().Equal(decimal.RequireFromString("90")))

	// chaining stays exact
	chained, err := price.ApplyPercent(0.10)
	require.NoError(t, err)
	chained, err = chained.ApplyPercent(0.05)
	require.NoError(t, err)
	require.True(t, chained.Value().Equal(decimal.RequireFromString("115.5")))
}

func TestPrice_DistanceFrom(t *testing.T) {
	pair := mustPair(t, "BTC/USDT")

	distance, err := pair.NewPrice(110).DistanceFrom(pair.NewPrice(100))
	require.NoError(t, err)
	require.InDelta(t, 10.0, distance, 1e-9)

	distance, err = pair.NewPrice(100).DistanceFrom(pair.NewPrice(110))
	require.NoError(t, err)
	require.InDelta(t, -9.090909, distance, 1e-5)

	distance, err = pair.NewPrice(100).DistanceFrom(pair.NewPrice(100))
	require.NoError(t, err)
	require.Zero(t, distance)

	// a zero reference is an explicit error, never infinity
	_, err = pair.NewPrice(100).DistanceFrom(pair.ZeroPrice())
	require.ErrorIs(t, err, ErrDivisionByZero)

	eth := mustPair(t, "ETH/USDT")
	_, err = pair.NewPrice(100).DistanceFrom(eth.NewPrice(100))
	require.ErrorIs(t, err, ErrPairMismatch)
}

func TestPrice_Midpoint(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	mid, err := Midpoint(pair.NewPrice(49000), pair.NewPrice(51000))
	require.NoError(t, err)
	require.True(t, mid.Value().Equal(decimal.RequireFromString("50000")))
	require.Equal(t, "BTC", mid.BaseSymbol())
	require.Equal(t, "USD", mid.QuoteSymbol())

	same, err := Midpoint(pair.NewPrice(100), pair.NewPrice(100))
	require.NoError(t, err)
	require.True(t, same.Value().Equal(decimal.RequireFromString("100")))

	eth := mustPair(t, "ETH/USD")
	_, err = Midpoint(pair.NewPrice(100), eth.NewPrice(100))
	require.ErrorIs(t, err, ErrPairMismatch)
}

func TestPrice_Ratio(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	ratio, err := pair.NewPrice(55000).Ratio(pair.NewPrice(50000))
	require.NoError(t, err)
	require.True(t, ratio.Equal(decimal.RequireFromString("1.1")))

	_, err = pair.NewPrice(55000).Ratio(pair.ZeroPrice())
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPrice_Comparisons(t *testing.T) {
	pair := mustPair(t, "BTC/USD")
	eth := mustPair(t, "ETH/USD")

	cmp, err := pair.NewPrice(49000).Cmp(pair.NewPrice(51000))
	require.NoError(t, err)
	require.Equal(t, -1, cmp)

	require.True(t, pair.NewPrice(100).Equal(pair.NewPrice(100)))
	require.False(t, pair.NewPrice(100).Equal(eth.NewPrice(100)))

	_, err = pair.NewPrice(100).Cmp(eth.NewPrice(100))
	require.ErrorIs(t, err, ErrPairMismatch)
}

func TestPrice_SignPredicates(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	require.True(t, pair.NewPrice(1).IsPositive())
	require.True(t, pair.ZeroPrice().IsZero())
	require.True(t, pair.NewPrice(-1).IsNegative())
}

func TestPrice_Formatting(t *testing.T) {
	pair := mustPair(t, "BTC/USD")
	require.Equal(t, "50000.00 BTC/USD", pair.NewPrice(50000).String())
}
