package quotes

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Default display precisions: tokens at 8 decimal places, fiat and
// stable quote currencies at 2.
const (
	DefaultBasePrecision  int32 = 8
	DefaultQuotePrecision int32 = 2
)

// Pair is the factory for one trading pair's value objects. It parses a
// "BASE/QUOTE" identifier once and stamps every amount and price it mints
// with the validated symbols and precisions, so two amounts from the same
// pair are always safe to combine. A Pair is immutable after construction
// and is shared by reference across everything it produces.
type Pair struct {
	id             string
	baseSymbol     string
	quoteSymbol    string
	basePrecision  int32
	quotePrecision int32
}

// Option configures a Pair at construction.
type Option func(*Pair)

// WithBasePrecision overrides the display precision of base amounts.
func WithBasePrecision(places int32) Option {
	return func(p *Pair) {
		p.basePrecision = places
	}
}

// WithQuotePrecision overrides the display precision of quote amounts.
func WithQuotePrecision(places int32) Option {
	return func(p *Pair) {
		p.quotePrecision = places
	}
}

// NewPair parses a "BASE/QUOTE" identifier, e.g. "BTC/USD". Symbols are
// upper-cased; a malformed identifier fails with ErrConstruction.
func NewPair(id string, opts ...Option) (*Pair, error) {
	parts := strings.Split(id, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errors.Wrapf(ErrConstruction, "malformed pair %q, want BASE/QUOTE", id)
	}

	pair := &Pair{
		baseSymbol:     strings.ToUpper(strings.TrimSpace(parts[0])),
		quoteSymbol:    strings.ToUpper(strings.TrimSpace(parts[1])),
		basePrecision:  DefaultBasePrecision,
		quotePrecision: DefaultQuotePrecision,
	}
	if pair.baseSymbol == "" || pair.quoteSymbol == "" {
		return nil, errors.Wrapf(ErrConstruction, "malformed pair %q, want BASE/QUOTE", id)
	}
	pair.id = pair.baseSymbol + "/" + pair.quoteSymbol

	for _, opt := range opts {
		opt(pair)
	}
	if pair.basePrecision < 0 || pair.quotePrecision < 0 {
		return nil, errors.Wrapf(ErrValidation, "negative precision for pair %q", id)
	}

	return pair, nil
}

// ID returns the canonical "BASE/QUOTE" identifier.
func (p *Pair) ID() string { return p.id }

// BaseSymbol returns the base currency symbol.
func (p *Pair) BaseSymbol() string { return p.baseSymbol }

// QuoteSymbol returns the quote currency symbol.
func (p *Pair) QuoteSymbol() string { return p.quoteSymbol }

// BasePrecision returns the display precision of base amounts.
func (p *Pair) BasePrecision() int32 { return p.basePrecision }

// QuotePrecision returns the display precision of quote amounts.
func (p *Pair) QuotePrecision() int32 { return p.quotePrecision }

// Symbol returns the concatenated exchange-style symbol, e.g. "BTCUSD".
func (p *Pair) Symbol() string { return p.baseSymbol + p.quoteSymbol }

// String returns the canonical identifier.
func (p *Pair) String() string { return p.id }

// NewBaseAsset mints a base-currency amount from a float crossing the
// exact-decimal boundary.
func (p *Pair) NewBaseAsset(amount float64) BaseAsset {
	return p.BaseAssetFromDecimal(decimal.NewFromFloat(amount))
}

// BaseAssetFromDecimal mints a base-currency amount from an exact decimal.
func (p *Pair) BaseAssetFromDecimal(amount decimal.Decimal) BaseAsset {
	return BaseAsset{newQuoted(amount, p.baseSymbol, p.basePrecision)}
}

// NewQuoteAsset mints a quote-currency amount from a float crossing the
// exact-decimal boundary.
func (p *Pair) NewQuoteAsset(amount float64) QuoteAsset {
	return p.QuoteAssetFromDecimal(decimal.NewFromFloat(amount))
}

// QuoteAssetFromDecimal mints a quote-currency amount from an exact decimal.
func (p *Pair) QuoteAssetFromDecimal(amount decimal.Decimal) QuoteAsset {
	return QuoteAsset{newQuoted(amount, p.quoteSymbol, p.quotePrecision)}
}

// NewPrice mints a price for this pair from a float crossing the
// exact-decimal boundary.
func (p *Pair) NewPrice(value float64) Price {
	return p.PriceFromDecimal(decimal.NewFromFloat(value))
}

// PriceFromDecimal mints a price for this pair from an exact decimal. The
// rate is kept exact, not truncated.
func (p *Pair) PriceFromDecimal(value decimal.Decimal) Price {
	return Price{
		value:          value,
		baseSymbol:     p.baseSymbol,
		quoteSymbol:    p.quoteSymbol,
		basePrecision:  p.basePrecision,
		quotePrecision: p.quotePrecision,
		minted:         true,
	}
}

// ZeroBase returns the additive identity for base amounts of this pair.
func (p *Pair) ZeroBase() BaseAsset {
	return p.BaseAssetFromDecimal(decimal.Zero)
}

// ZeroQuote returns the additive identity for quote amounts of this pair.
func (p *Pair) ZeroQuote() QuoteAsset {
	return p.QuoteAssetFromDecimal(decimal.Zero)
}

// ZeroPrice returns a zero-valued price for this pair.
func (p *Pair) ZeroPrice() Price {
	return p.PriceFromDecimal(decimal.Zero)
}

// OwnsPrice reports whether the price was minted for this pair.
func (p *Pair) OwnsPrice(price Price) bool {
	return price.minted && price.baseSymbol == p.baseSymbol && price.quoteSymbol == p.quoteSymbol
}

// OwnsBase reports whether the base amount carries this pair's base symbol.
func (p *Pair) OwnsBase(amount BaseAsset) bool {
	return amount.minted && amount.symbol == p.baseSymbol
}

// OwnsQuote reports whether the quote amount carries this pair's quote symbol.
func (p *Pair) OwnsQuote(amount QuoteAsset) bool {
	return amount.minted && amount.symbol == p.quoteSymbol
}

// CheckOwnsPrice is OwnsPrice as a guard, failing with ErrPairMismatch.
func (p *Pair) CheckOwnsPrice(price Price) error {
	if err := price.checkMinted(); err != nil {
		return err
	}
	if !p.OwnsPrice(price) {
		return errors.Wrapf(ErrPairMismatch, "price %s does not belong to pair %s", price.String(), p.id)
	}
	return nil
}

// CheckOwnsBase is OwnsBase as a guard, failing with ErrPairMismatch.
func (p *Pair) CheckOwnsBase(amount BaseAsset) error {
	if err := amount.checkMinted(); err != nil {
		return err
	}
	if !p.OwnsBase(amount) {
		return errors.Wrapf(ErrPairMismatch, "amount %s does not belong to pair %s", amount.String(), p.id)
	}
	return nil
}

// Legacy construction aliases kept for callers written against the old
// Token/USD vocabulary. They are naming sugar only: NewUSD mints the quote
// currency of the pair, which is not necessarily USD.

// NewToken is an alias for NewBaseAsset.
func (p *Pair) NewToken(amount float64) BaseAsset { return p.NewBaseAsset(amount) }

// NewUSD is an alias for NewQuoteAsset.
func (p *Pair) NewUSD(amount float64) QuoteAsset { return p.NewQuoteAsset(amount) }

// ZeroToken is an alias for ZeroBase.
func (p *Pair) ZeroToken() BaseAsset { return p.ZeroBase() }

// ZeroUSD is an alias for ZeroQuote.
func (p *Pair) ZeroUSD() QuoteAsset { return p.ZeroQuote() }

// GoString makes mismatched-pair failures readable in test output.
func (p *Pair) GoString() string {
	return fmt.Sprintf("quotes.Pair(%s, base=%d, quote=%d)", p.id, p.basePrecision, p.quotePrecision)
}
