package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/venantvr/go-trading-objects/internal/quotes"
)

// three positions with cost bases 5000.10, 2600.20 and 7200.30
func portfolio(t *testing.T, pair *quotes.Pair) []Position {
	t.Helper()
	return []Position{
		newTestPosition(t, pair, 50001, 0.1, 55000, 45000),
		newTestPosition(t, pair, 26002, 0.1, 30000, 20000),
		newTestPosition(t, pair, 72003, 0.1, 80000, 60000),
	}
}

func TestTotalCostBasis(t *testing.T) {
	pair := mustPair(t, "BTC/USD")
	positions := portfolio(t, pair)

	total, err := TotalCostBasis(pair, positions)
	require.NoError(t, err)
	require.Equal(t, "USD", total.Symbol())

	// exactly 14800.60, no binary-float residue
	require.True(t, total.Amount().Equal(decimal.RequireFromString("14800.60")),
		"got %s", total.Amount().String())
}

func TestTotalCostBasis_Empty(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	total, err := TotalCostBasis(pair, nil)
	require.NoError(t, err)
	require.True(t, total.IsZero())
	require.Equal(t, "USD", total.Symbol())
}

func TestTotalCostBasis_ForeignPosition(t *testing.T) {
	btc := mustPair(t, "BTC/USD")
	eth := mustPair(t, "ETH/USD")

	mixed := []Position{
		newTestPosition(t, btc, 50000, 0.1, 55000, 45000),
		newTestPosition(t, eth, 3000, 1, 3500, 2500),
	}
	_, err := TotalCostBasis(btc, mixed)
	require.ErrorIs(t, err, quotes.ErrPairMismatch)
}

func TestTotalValue(t *testing.T) {
	pair := mustPair(t, "BTC/USD")
	positions := portfolio(t, pair)

	// 0.3 tokens in total at 60000
	total, err := TotalValue(pair, positions, pair.NewPrice(60000))
	require.NoError(t, err)
	require.True(t, total.Amount().Equal(decimal.RequireFromString("18000")))

	empty, err := TotalValue(pair, nil, pair.NewPrice(60000))
	require.NoError(t, err)
	require.True(t, empty.IsZero())

	eth := mustPair(t, "ETH/USD")
	_, err = TotalValue(pair, positions, eth.NewPrice(60000))
	require.ErrorIs(t, err, quotes.ErrPairMismatch)
}

func TestWeightedAveragePrice(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	positions := []Position{
		newTestPosition(t, pair, 50000, 1, 55000, 45000),
		newTestPosition(t, pair, 60000, 3, 65000, 55000),
	}

	// (50000*1 + 60000*3) / 4 = 57500
	avg, err := WeightedAveragePrice(pair, positions)
	require.NoError(t, err)
	require.True(t, avg.Value().Equal(decimal.RequireFromString("57500")))
	require.Equal(t, "BTC", avg.BaseSymbol())
	require.Equal(t, "USD", avg.QuoteSymbol())
}

func TestWeightedAveragePrice_ZeroTokens(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	// empty input has zero tokens: an error, not a placeholder price
	_, err := WeightedAveragePrice(pair, nil)
	require.ErrorIs(t, err, quotes.ErrDivisionByZero)

	zeroSized := []Position{newTestPosition(t, pair, 50000, 0, 55000, 45000)}
	_, err = WeightedAveragePrice(pair, zeroSized)
	require.ErrorIs(t, err, quotes.ErrDivisionByZero)
}

func TestAggregateROI(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	positions := []Position{
		newTestPosition(t, pair, 50000, 1, 55000, 45000),
		newTestPosition(t, pair, 50000, 1, 55000, 45000),
	}

	// cost 100000, value 110000 -> exactly 10%
	roi, err := AggregateROI(pair, positions, pair.NewPrice(55000))
	require.NoError(t, err)
	require.Equal(t, 10.0, roi)

	roi, err = AggregateROI(pair, positions, pair.NewPrice(45000))
	require.NoError(t, err)
	require.Equal(t, -10.0, roi)
}

func TestAggregateROI_ZeroCostBasis(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	_, err := AggregateROI(pair, nil, pair.NewPrice(55000))
	require.ErrorIs(t, err, quotes.ErrDivisionByZero)

	free := []Position{newTestPosition(t, pair, 0, 1, 55000, 45000)}
	_, err = AggregateROI(pair, free, pair.NewPrice(55000))
	require.ErrorIs(t, err, quotes.ErrDivisionByZero)
}
