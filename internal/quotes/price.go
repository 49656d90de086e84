package quotes

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Price is the exchange rate of one trading pair: how much quote currency a
// single unit of the base currency costs. Values are minted by
// Pair.NewPrice. A zero or negative price is a legal value; operations that
// need a positive denominator fail with ErrDivisionByZero instead of
// returning infinity.
type Price struct {
	value          decimal.Decimal
	baseSymbol     string
	quoteSymbol    string
	basePrecision  int32
	quotePrecision int32
	minted         bool
}

// Value returns the exact decimal rate.
func (p Price) Value() decimal.Decimal { return p.value }

// BaseSymbol returns the base currency symbol of the pair.
func (p Price) BaseSymbol() string { return p.baseSymbol }

// QuoteSymbol returns the quote currency symbol of the pair.
func (p Price) QuoteSymbol() string { return p.quoteSymbol }

// String renders the rate at quote precision with the pair it belongs to.
func (p Price) String() string {
	return fmt.Sprintf("%s %s/%s", p.value.StringFixed(p.quotePrecision), p.baseSymbol, p.quoteSymbol)
}

// IsPositive reports whether the rate is strictly greater than zero.
func (p Price) IsPositive() bool { return p.value.IsPositive() }

// IsZero reports whether the rate equals zero.
func (p Price) IsZero() bool { return p.value.IsZero() }

// IsNegative reports whether the rate is strictly less than zero.
func (p Price) IsNegative() bool { return p.value.IsNegative() }

func (p Price) checkMinted() error {
	if !p.minted {
		return errors.WithStack(ErrConstruction)
	}
	return nil
}

func (p Price) checkSamePair(other Price) error {
	if err := p.checkMinted(); err != nil {
		return err
	}
	if err := other.checkMinted(); err != nil {
		return err
	}
	if p.baseSymbol != other.baseSymbol || p.quoteSymbol != other.quoteSymbol {
		return errors.Wrapf(ErrPairMismatch, "%s/%s vs %s/%s",
			p.baseSymbol, p.quoteSymbol, other.baseSymbol, other.quoteSymbol)
	}
	return nil
}

func (p Price) derive(value decimal.Decimal) Price {
	out := p
	out.value = value
	return out
}

// Add returns the sum of two prices of the same pair.
func (p Price) Add(other Price) (Price, error) {
	if err := p.checkSamePair(other); err != nil {
		return Price{}, errors.Wrap(err, "add prices")
	}
	return p.derive(p.value.Add(other.value)), nil
}

// Sub returns the difference of two prices of the same pair.
func (p Price) Sub(other Price) (Price, error) {
	if err := p.checkSamePair(other); err != nil {
		return Price{}, errors.Wrap(err, "subtract prices")
	}
	return p.derive(p.value.Sub(other.value)), nil
}

// Mul scales the price by a plain scalar.
func (p Price) Mul(factor float64) (Price, error) {
	if err := p.checkMinted(); err != nil {
		return Price{}, err
	}
	return p.derive(p.value.Mul(scalar(factor))), nil
}

// Div divides the price by a plain scalar.
func (p Price) Div(divisor float64) (Price, error) {
	if err := p.checkMinted(); err != nil {
		return Price{}, err
	}
	d := scalar(divisor)
	if d.IsZero() {
		return Price{}, errors.Wrap(ErrDivisionByZero, "divide price by scalar")
	}
	return p.derive(p.value.Div(d)), nil
}

// Ratio divides one price by another of the same pair, yielding a plain
// dimensionless ratio.
func (p Price) Ratio(other Price) (decimal.Decimal, error) {
	if err := p.checkSamePair(other); err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "price ratio")
	}
	if other.value.IsZero() {
		return decimal.Decimal{}, errors.Wrap(ErrDivisionByZero, "price ratio")
	}
	return p.value.Div(other.value), nil
}

// MulBase converts a base amount into the quote currency: price * token = usd.
func (p Price) MulBase(amount BaseAsset) (QuoteAsset, error) {
	if err := p.checkMinted(); err != nil {
		return QuoteAsset{}, err
	}
	if err := amount.checkMinted(); err != nil {
		return QuoteAsset{}, err
	}
	if amount.symbol != p.baseSymbol {
		return QuoteAsset{}, errors.Wrapf(ErrPairMismatch, "%s price applied to %s amount", p.String(), amount.symbol)
	}
	return QuoteAsset{newQuoted(p.value.Mul(amount.amount), p.quoteSymbol, p.quotePrecision)}, nil
}

// Cmp orders two prices of the same pair. It returns -1, 0 or 1.
func (p Price) Cmp(other Price) (int, error) {
	if err := p.checkSamePair(other); err != nil {
		return 0, err
	}
	return p.value.Cmp(other.value), nil
}

// Equal reports exact equality, false across different pairs.
func (p Price) Equal(other Price) bool {
	return p.minted && other.minted &&
		p.baseSymbol == other.baseSymbol &&
		p.quoteSymbol == other.quoteSymbol &&
		p.value.Equal(other.value)
}

// WithinPercent reports whether the other price lies within the given
// fractional tolerance of this one: |p - other| / p <= tolerance. The
// receiver's rate is the denominator and must be non-zero.
func (p Price) WithinPercent(other Price, tolerance float64) (bool, error) {
	if err := p.checkSamePair(other); err != nil {
		return false, errors.Wrap(err, "price tolerance check")
	}
	if p.value.IsZero() {
		return false, errors.Wrap(ErrDivisionByZero, "price tolerance check")
	}
	diff := p.value.Sub(other.value).Abs().Div(p.value.Abs())
	return diff.LessThanOrEqual(scalar(tolerance)), nil
}

// ApplyPercent returns a new price scaled by (1 + pct), pct being a
// fraction: 0.02 raises the price by 2%, -0.02 lowers it.
func (p Price) ApplyPercent(pct float64) (Price, error) {
	if err := p.checkMinted(); err != nil {
		return Price{}, err
	}
	return p.derive(p.value.Mul(one.Add(scalar(pct)))), nil
}

// DistanceFrom returns the signed percentage distance of this price from a
// reference: (p - other) / other * 100. A zero reference is an error, never
// an implicit infinity.
func (p Price) DistanceFrom(other Price) (float64, error) {
	if err := p.checkSamePair(other); err != nil {
		return 0, errors.Wrap(err, "price distance")
	}
	if other.value.IsZero() {
		return 0, errors.Wrap(ErrDivisionByZero, "price distance from zero reference")
	}
	return p.value.Sub(other.value).Div(other.value).Mul(hundred).InexactFloat64(), nil
}

// Midpoint returns the price halfway between two prices of the same pair.
func Midpoint(a, b Price) (Price, error) {
	if err := a.checkSamePair(b); err != nil {
		return Price{}, errors.Wrap(err, "price midpoint")
	}
	return a.derive(a.value.Add(b.value).Div(two)), nil
}
