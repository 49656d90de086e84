// Package quotes implements exact-decimal trading amounts bound to a
// currency pair. A Pair factory is the only construction path for the
// value types, so every live amount carries a validated symbol and a
// fixed display precision, and mixed-currency arithmetic cannot happen
// by accident.
package quotes

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// QuotedAmount is the behavior shared by every amount quoted in a fixed
// symbol: exact decimal storage, the symbol it is denominated in, and the
// number of decimal places used for display.
type QuotedAmount interface {
	Amount() decimal.Decimal
	Symbol() string
	Precision() int32
	String() string
}

// quoted holds the state shared by BaseAsset and QuoteAsset. The minted
// flag can only be set inside this package, which is what makes the
// factory the sole construction path.
type quoted struct {
	amount    decimal.Decimal
	symbol    string
	precision int32
	minted    bool
}

func newQuoted(amount decimal.Decimal, symbol string, precision int32) quoted {
	return quoted{
		amount:    amount.Truncate(precision),
		symbol:    symbol,
		precision: precision,
		minted:    true,
	}
}

// Amount returns the exact decimal value.
func (q quoted) Amount() decimal.Decimal { return q.amount }

// Symbol returns the currency symbol the amount is denominated in.
func (q quoted) Symbol() string { return q.symbol }

// Precision returns the display precision in decimal places.
func (q quoted) Precision() int32 { return q.precision }

// String renders the amount at its display precision followed by the symbol.
func (q quoted) String() string {
	return fmt.Sprintf("%s %s", q.amount.StringFixed(q.precision), q.symbol)
}

// IsZero reports whether the amount equals zero.
func (q quoted) IsZero() bool { return q.amount.IsZero() }

// IsPositive reports whether the amount is strictly greater than zero.
func (q quoted) IsPositive() bool { return q.amount.IsPositive() }

// IsNegative reports whether the amount is strictly less than zero.
func (q quoted) IsNegative() bool { return q.amount.IsNegative() }

func (q quoted) checkMinted() error {
	if !q.minted {
		return errors.WithStack(ErrConstruction)
	}
	return nil
}

func (q quoted) checkSameSymbol(other quoted) error {
	if err := q.checkMinted(); err != nil {
		return err
	}
	if err := other.checkMinted(); err != nil {
		return err
	}
	if q.symbol != other.symbol {
		return errors.Wrapf(ErrSymbolMismatch, "%s vs %s", q.symbol, other.symbol)
	}
	return nil
}

// cmp orders two same-symbol amounts.
func (q quoted) cmp(other quoted) (int, error) {
	if err := q.checkSameSymbol(other); err != nil {
		return 0, err
	}
	return q.amount.Cmp(other.amount), nil
}

// equal never fails: amounts in different symbols are simply not equal.
func (q quoted) equal(other quoted) bool {
	return q.minted && other.minted &&
		q.symbol == other.symbol &&
		q.amount.Equal(other.amount)
}

// scalar converts a float crossing into the exact-decimal domain. The
// conversion happens once, at the boundary, before any arithmetic.
func scalar(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// BaseAsset is an amount of the traded instrument of a pair, e.g. BTC in
// BTC/USD. Values are minted by Pair.NewBaseAsset.
type BaseAsset struct {
	quoted
}

// Add returns the sum of two base amounts of the same symbol.
func (a BaseAsset) Add(other BaseAsset) (BaseAsset, error) {
	if err := a.checkSameSymbol(other.quoted); err != nil {
		return BaseAsset{}, errors.Wrap(err, "add base amounts")
	}
	return BaseAsset{newQuoted(a.amount.Add(other.amount), a.symbol, a.precision)}, nil
}

// Sub returns the difference of two base amounts of the same symbol.
func (a BaseAsset) Sub(other BaseAsset) (BaseAsset, error) {
	if err := a.checkSameSymbol(other.quoted); err != nil {
		return BaseAsset{}, errors.Wrap(err, "subtract base amounts")
	}
	return BaseAsset{newQuoted(a.amount.Sub(other.amount), a.symbol, a.precision)}, nil
}

// Neg returns the amount with its sign flipped.
func (a BaseAsset) Neg() (BaseAsset, error) {
	if err := a.checkMinted(); err != nil {
		return BaseAsset{}, err
	}
	return BaseAsset{newQuoted(a.amount.Neg(), a.symbol, a.precision)}, nil
}

// Mul scales the amount by a plain scalar. Scaling never fails on symbol
// grounds.
func (a BaseAsset) Mul(factor float64) (BaseAsset, error) {
	if err := a.checkMinted(); err != nil {
		return BaseAsset{}, err
	}
	return BaseAsset{newQuoted(a.amount.Mul(scalar(factor)), a.symbol, a.precision)}, nil
}

// MulDecimal scales the amount by an exact decimal factor.
func (a BaseAsset) MulDecimal(factor decimal.Decimal) (BaseAsset, error) {
	if err := a.checkMinted(); err != nil {
		return BaseAsset{}, err
	}
	return BaseAsset{newQuoted(a.amount.Mul(factor), a.symbol, a.precision)}, nil
}

// Div divides the amount by a plain scalar.
func (a BaseAsset) Div(divisor float64) (BaseAsset, error) {
	if err := a.checkMinted(); err != nil {
		return BaseAsset{}, err
	}
	d := scalar(divisor)
	if d.IsZero() {
		return BaseAsset{}, errors.Wrap(ErrDivisionByZero, "divide base amount by scalar")
	}
	return BaseAsset{newQuoted(a.amount.Div(d), a.symbol, a.precision)}, nil
}

// Ratio divides one base amount by another of the same symbol, yielding a
// plain dimensionless ratio.
func (a BaseAsset) Ratio(other BaseAsset) (decimal.Decimal, error) {
	if err := a.checkSameSymbol(other.quoted); err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "base amount ratio")
	}
	if other.amount.IsZero() {
		return decimal.Decimal{}, errors.Wrap(ErrDivisionByZero, "base amount ratio")
	}
	return a.amount.Div(other.amount), nil
}

// Cmp orders two base amounts of the same symbol. It returns -1, 0 or 1.
func (a BaseAsset) Cmp(other BaseAsset) (int, error) {
	return a.cmp(other.quoted)
}

// Equal reports exact equality. Amounts in different symbols are not equal,
// but comparing them is not an error, so values stay usable as map keys.
func (a BaseAsset) Equal(other BaseAsset) bool {
	return a.equal(other.quoted)
}

// ValueAt converts the amount into the quote currency at the given price.
func (a BaseAsset) ValueAt(price Price) (QuoteAsset, error) {
	return price.MulBase(a)
}

// Split divides the amount into two parts. The ratio is the share of the
// first part and must lie in [0, 1].
func (a BaseAsset) Split(ratio float64) (BaseAsset, BaseAsset, error) {
	if err := a.checkMinted(); err != nil {
		return BaseAsset{}, BaseAsset{}, err
	}
	if ratio < 0 || ratio > 1 {
		return BaseAsset{}, BaseAsset{}, errors.Wrapf(ErrValidation, "split ratio %v outside [0, 1]", ratio)
	}
	r := scalar(ratio)
	first := a.amount.Mul(r)
	second := a.amount.Mul(decimal.NewFromInt(1).Sub(r))
	return BaseAsset{newQuoted(first, a.symbol, a.precision)},
		BaseAsset{newQuoted(second, a.symbol, a.precision)},
		nil
}

// QuoteAsset is an amount of the settlement currency of a pair, e.g. USD in
// BTC/USD. Values are minted by Pair.NewQuoteAsset.
type QuoteAsset struct {
	quoted
}

// Add returns the sum of two quote amounts of the same symbol.
func (a QuoteAsset) Add(other QuoteAsset) (QuoteAsset, error) {
	if err := a.checkSameSymbol(other.quoted); err != nil {
		return QuoteAsset{}, errors.Wrap(err, "add quote amounts")
	}
	return QuoteAsset{newQuoted(a.amount.Add(other.amount), a.symbol, a.precision)}, nil
}

// Sub returns the difference of two quote amounts of the same symbol.
func (a QuoteAsset) Sub(other QuoteAsset) (QuoteAsset, error) {
	if err := a.checkSameSymbol(other.quoted); err != nil {
		return QuoteAsset{}, errors.Wrap(err, "subtract quote amounts")
	}
	return QuoteAsset{newQuoted(a.amount.Sub(other.amount), a.symbol, a.precision)}, nil
}

// Neg returns the amount with its sign flipped.
func (a QuoteAsset) Neg() (QuoteAsset, error) {
	if err := a.checkMinted(); err != nil {
		return QuoteAsset{}, err
	}
	return QuoteAsset{newQuoted(a.amount.Neg(), a.symbol, a.precision)}, nil
}

// Mul scales the amount by a plain scalar.
func (a QuoteAsset) Mul(factor float64) (QuoteAsset, error) {
	if err := a.checkMinted(); err != nil {
		return QuoteAsset{}, err
	}
	return QuoteAsset{newQuoted(a.amount.Mul(scalar(factor)), a.symbol, a.precision)}, nil
}

// MulDecimal scales the amount by an exact decimal factor.
func (a QuoteAsset) MulDecimal(factor decimal.Decimal) (QuoteAsset, error) {
	if err := a.checkMinted(); err != nil {
		return QuoteAsset{}, err
	}
	return QuoteAsset{newQuoted(a.amount.Mul(factor), a.symbol, a.precision)}, nil
}

// Div divides the amount by a plain scalar.
func (a QuoteAsset) Div(divisor float64) (QuoteAsset, error) {
	if err := a.checkMinted(); err != nil {
		return QuoteAsset{}, err
	}
	d := scalar(divisor)
	if d.IsZero() {
		return QuoteAsset{}, errors.Wrap(ErrDivisionByZero, "divide quote amount by scalar")
	}
	return QuoteAsset{newQuoted(a.amount.Div(d), a.symbol, a.precision)}, nil
}

// Ratio divides one quote amount by another of the same symbol, yielding a
// plain dimensionless ratio.
func (a QuoteAsset) Ratio(other QuoteAsset) (decimal.Decimal, error) {
	if err := a.checkSameSymbol(other.quoted); err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "quote amount ratio")
	}
	if other.amount.IsZero() {
		return decimal.Decimal{}, errors.Wrap(ErrDivisionByZero, "quote amount ratio")
	}
	return a.amount.Div(other.amount), nil
}

// DivPrice converts the quote amount into the base currency at the given
// price: usd / price = token.
func (a QuoteAsset) DivPrice(price Price) (BaseAsset, error) {
	if err := a.checkMinted(); err != nil {
		return BaseAsset{}, err
	}
	if err := price.checkMinted(); err != nil {
		return BaseAsset{}, err
	}
	if a.symbol != price.quoteSymbol {
		return BaseAsset{}, errors.Wrapf(ErrPairMismatch, "%s amount divided by %s price", a.symbol, price.String())
	}
	if price.value.IsZero() {
		return BaseAsset{}, errors.Wrap(ErrDivisionByZero, "divide quote amount by zero price")
	}
	return BaseAsset{newQuoted(a.amount.Div(price.value), price.baseSymbol, price.basePrecision)}, nil
}

// Cmp orders two quote amounts of the same symbol. It returns -1, 0 or 1.
func (a QuoteAsset) Cmp(other QuoteAsset) (int, error) {
	return a.cmp(other.quoted)
}

// Equal reports exact equality, false across mismatched symbols.
func (a QuoteAsset) Equal(other QuoteAsset) bool {
	return a.equal(other.quoted)
}
