package quotes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustPair(t *testing.T, id string, opts ...Option) *Pair {
	t.Helper()
	pair, err := NewPair(id, opts...)
	require.NoError(t, err)
	return pair
}

func TestBaseAsset_AddSameSymbol(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	a := pair.NewBaseAsset(0.5)
	b := pair.NewBaseAsset(0.25)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.True(t, sum.Amount().Equal(decimal.RequireFromString("0.75")))
	require.Equal(t, "BTC", sum.Symbol())
	require.Equal(t, int32(8), sum.Precision())
}

func TestBaseAsset_AddSymbolMismatch(t *testing.T) {
	btc := mustPair(t, "BTC/USD")
	eth := mustPair(t, "ETH/USD")

	_, err := btc.NewBaseAsset(1).Add(eth.NewBaseAsset(1))
	require.ErrorIs(t, err, ErrSymbolMismatch)

	_, err = btc.NewBaseAsset(1).Sub(eth.NewBaseAsset(1))
	require.ErrorIs(t, err, ErrSymbolMismatch)
}

func TestBaseAsset_AdditionIsExact(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	// values that famously drift under binary floats
	a := pair.NewBaseAsset(0.1)
	b := pair.NewBaseAsset(0.2)
	c := pair.NewBaseAsset(0.3)

	left, err := a.Add(b)
	require.NoError(t, err)
	left, err = left.Add(c)
	require.NoError(t, err)

	right, err := b.Add(c)
	require.NoError(t, err)
	right, err = a.Add(right)
	require.NoError(t, err)

	require.True(t, left.Equal(right))
	require.True(t, left.Amount().Equal(decimal.RequireFromString("0.6")))

	// commutativity
	ab, err := a.Add(b)
	require.NoError(t, err)
	ba, err := b.Add(a)
	require.NoError(t, err)
	require.True(t, ab.Equal(ba))
}

func TestBaseAsset_ScalarOps(t *testing.T) {
	pair := mustPair(t, "BTC/USD")
	a := pair.NewBaseAsset(1.5)

	doubled, err := a.Mul(2)
	require.NoError(t, err)
	require.True(t, doubled.Amount().Equal(decimal.RequireFromString("3")))

	halved, err := a.Div(2)
	require.NoError(t, err)
	require.True(t, halved.Amount().Equal(decimal.RequireFromString("0.75")))

	_, err = a.Div(0)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestBaseAsset_Ratio(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	ratio, err := pair.NewBaseAsset(1).Ratio(pair.NewBaseAsset(4))
	require.NoError(t, err)
	require.True(t, ratio.Equal(decimal.RequireFromString("0.25")))

	_, err = pair.NewBaseAsset(1).Ratio(pair.ZeroBase())
	require.ErrorIs(t, err, ErrDivisionByZero)

	eth := mustPair(t, "ETH/USD")
	_, err = pair.NewBaseAsset(1).Ratio(eth.NewBaseAsset(1))
	require.ErrorIs(t, err, ErrSymbolMismatch)
}

func TestBaseAsset_Comparisons(t *testing.T) {
	btc := mustPair(t, "BTC/USD")
	eth := mustPair(t, "ETH/USD")

	small := btc.NewBaseAsset(1)
	big := btc.NewBaseAsset(2)

	cmp, err := small.Cmp(big)
	require.NoError(t, err)
	require.Equal(t, -1, cmp)

	// equality across symbols is false, not an error
	require.False(t, small.Equal(eth.NewBaseAsset(1)))

	// ordering across symbols is a type error
	_, err = small.Cmp(eth.NewBaseAsset(1))
	require.ErrorIs(t, err, ErrSymbolMismatch)
}

func TestBaseAsset_TruncatesToPrecision(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	a := pair.BaseAssetFromDecimal(decimal.RequireFromString("0.123456789123"))
	require.True(t, a.Amount().Equal(decimal.RequireFromString("0.12345678")))

	q := pair.QuoteAssetFromDecimal(decimal.RequireFromString("10.999"))
	require.True(t, q.Amount().Equal(decimal.RequireFromString("10.99")))
}

func TestBaseAsset_Formatting(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	require.Equal(t, "0.50000000 BTC", pair.NewBaseAsset(0.5).String())
	require.Equal(t, "42.10 USD", pair.NewQuoteAsset(42.1).String())
}

func TestBaseAsset_Split(t *testing.T) {
	pair := mustPair(t, "BTC/USD")
	token := pair.NewBaseAsset(1)

	tests := []struct {
		name    string
		ratio   float64
		first   string
		second  string
		wantErr error
	}{
		{name: "equal", ratio: 0.5, first: "0.5", second: "0.5"},
		{name: "unequal", ratio: 0.3, first: "0.3", second: "0.7"},
		{name: "all to first", ratio: 1.0, first: "1", second: "0"},
		{name: "all to second", ratio: 0.0, first: "0", second: "1"},
		{name: "ratio above one", ratio: 1.5, wantErr: ErrValidation},
		{name: "negative ratio", ratio: -0.1, wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, err := token.Split(tt.ratio)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, first.Amount().Equal(decimal.RequireFromString(tt.first)))
			require.True(t, second.Amount().Equal(decimal.RequireFromString(tt.second)))
		})
	}
}

func TestQuoteAsset_Arithmetic(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	sum, err := pair.NewQuoteAsset(10.10).Add(pair.NewQuoteAsset(20.20))
	require.NoError(t, err)
	require.True(t, sum.Amount().Equal(decimal.RequireFromString("30.3")))

	diff, err := sum.Sub(pair.NewQuoteAsset(0.3))
	require.NoError(t, err)
	require.True(t, diff.Amount().Equal(decimal.RequireFromString("30")))

	neg, err := diff.Neg()
	require.NoError(t, err)
	require.True(t, neg.IsNegative())

	eur := mustPair(t, "BTC/EUR")
	_, err = sum.Add(eur.NewQuoteAsset(1))
	require.ErrorIs(t, err, ErrSymbolMismatch)
}

func TestQuoteAsset_DivPrice(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	usd := pair.NewQuoteAsset(25000)
	price := pair.NewPrice(50000)

	tokens, err := usd.DivPrice(price)
	require.NoError(t, err)
	require.Equal(t, "BTC", tokens.Symbol())
	require.True(t, tokens.Amount().Equal(decimal.RequireFromString("0.5")))

	_, err = usd.DivPrice(pair.ZeroPrice())
	require.ErrorIs(t, err, ErrDivisionByZero)

	eur := mustPair(t, "BTC/EUR")
	_, err = usd.DivPrice(eur.NewPrice(50000))
	require.ErrorIs(t, err, ErrPairMismatch)
}

func TestBaseAsset_ValueAt(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	value, err := pair.NewBaseAsset(0.5).ValueAt(pair.NewPrice(50000))
	require.NoError(t, err)
	require.Equal(t, "USD", value.Symbol())
	require.True(t, value.Amount().Equal(decimal.RequireFromString("25000")))
}

func TestAmount_ZeroValueRejected(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	// a zero-value BaseAsset was not minted by any factory
	var orphan BaseAsset
	_, err := orphan.Add(pair.NewBaseAsset(1))
	require.ErrorIs(t, err, ErrConstruction)

	_, err = orphan.Mul(2)
	require.ErrorIs(t, err, ErrConstruction)

	var orphanQuote QuoteAsset
	_, err = orphanQuote.Sub(pair.NewQuoteAsset(1))
	require.ErrorIs(t, err, ErrConstruction)

	var orphanPrice Price
	_, err = orphanPrice.Mul(2)
	require.ErrorIs(t, err, ErrConstruction)
}

func TestZeroHelpers(t *testing.T) {
	pair := mustPair(t, "BTC/USD")

	require.True(t, pair.ZeroBase().IsZero())
	require.True(t, pair.ZeroQuote().IsZero())
	require.True(t, pair.ZeroPrice().IsZero())

	// additive identity
	a := pair.NewBaseAsset(1.23)
	sum, err := a.Add(pair.ZeroBase())
	require.NoError(t, err)
	require.True(t, sum.Equal(a))
}
