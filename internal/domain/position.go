// Package domain implements the trading-position model built on the
// pair-bound value objects: an immutable position with its profit, ROI and
// signal computations, and portfolio-level aggregation over many positions.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/venantvr/go-trading-objects/internal/quotes"
)

// DefaultStrategyTag is assigned to positions created without an explicit
// strategy.
const DefaultStrategyTag = "default"

// Variations holds the fractional buy/sell thresholds a strategy attached
// to the position.
type Variations struct {
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
}

// PositionParams collects the inputs for NewPosition. ID, StrategyTag and
// Timestamp may be left empty; they default to a fresh UUID, "default" and
// the current UTC instant.
type PositionParams struct {
	ID                string
	ShortID           *int64
	PurchasePrice     quotes.Price
	NumberOfTokens    quotes.BaseAsset
	ExpectedSalePrice quotes.Price
	NextPurchasePrice quotes.Price
	Variations        Variations
	StrategyTag       string
	Notes             string
	Timestamp         time.Time
}

// Position is one open trading position. It is immutable: every adjustment
// returns a new value, so concurrent readers never observe a mutation.
// Identity, equality and hashing rest solely on the id.
type Position struct {
	id                string
	pair              *quotes.Pair
	purchasePrice     quotes.Price
	numberOfTokens    quotes.BaseAsset
	expectedSalePrice quotes.Price
	nextPurchasePrice quotes.Price
	variations        Variations
	strategyTag       string
	shortID           *int64
	notes             string
	timestamp         time.Time
}

// NewPosition validates that every price and amount belongs to the owning
// pair and builds the position. The pair is shared by reference, not owned.
func NewPosition(pair *quotes.Pair, params PositionParams) (Position, error) {
	if pair == nil {
		return Position{}, errors.Wrap(quotes.ErrValidation, "position requires a pair")
	}
	if err := pair.CheckOwnsPrice(params.PurchasePrice); err != nil {
		return Position{}, errors.Wrap(err, "purchase price")
	}
	if err := pair.CheckOwnsBase(params.NumberOfTokens); err != nil {
		return Position{}, errors.Wrap(err, "number of tokens")
	}
	if err := pair.CheckOwnsPrice(params.ExpectedSalePrice); err != nil {
		return Position{}, errors.Wrap(err, "expected sale price")
	}
	if err := pair.CheckOwnsPrice(params.NextPurchasePrice); err != nil {
		return Position{}, errors.Wrap(err, "next purchase price")
	}

	id := params.ID
	if id == "" {
		id = uuid.New().String()
	}
	tag := params.StrategyTag
	if tag == "" {
		tag = DefaultStrategyTag
	}
	ts := params.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return Position{
		id:                id,
		pair:              pair,
		purchasePrice:     params.PurchasePrice,
		numberOfTokens:    params.NumberOfTokens,
		expectedSalePrice: params.ExpectedSalePrice,
		nextPurchasePrice: params.NextPurchasePrice,
		variations:        params.Variations,
		strategyTag:       tag,
		shortID:           params.ShortID,
		notes:             params.Notes,
		timestamp:         ts,
	}, nil
}

// ID returns the position identity.
func (p Position) ID() string { return p.id }

// ShortID returns the optional numeric short identifier.
func (p Position) ShortID() (int64, bool) {
	if p.shortID == nil {
		return 0, false
	}
	return *p.shortID, true
}

// Pair returns the owning pair factory.
func (p Position) Pair() *quotes.Pair { return p.pair }

// PurchasePrice returns the entry price.
func (p Position) PurchasePrice() quotes.Price { return p.purchasePrice }

// NumberOfTokens returns the position size in base currency.
func (p Position) NumberOfTokens() quotes.BaseAsset { return p.numberOfTokens }

// ExpectedSalePrice returns the current sell target.
func (p Position) ExpectedSalePrice() quotes.Price { return p.expectedSalePrice }

// NextPurchasePrice returns the DCA buy threshold.
func (p Position) NextPurchasePrice() quotes.Price { return p.nextPurchasePrice }

// Variations returns the strategy thresholds.
func (p Position) Variations() Variations { return p.variations }

// StrategyTag returns the strategy label.
func (p Position) StrategyTag() string { return p.strategyTag }

// Notes returns the free-form notes.
func (p Position) Notes() string { return p.notes }

// Timestamp returns the creation instant.
func (p Position) Timestamp() time.Time { return p.timestamp }

// CostBasis returns the total amount originally invested: purchase price
// times position size, in quote currency.
func (p Position) CostBasis() (quotes.QuoteAsset, error) {
	return p.purchasePrice.MulBase(p.numberOfTokens)
}

// GrossValueAt returns the position's value at the given market price.
func (p Position) GrossValueAt(currentPrice quotes.Price) (quotes.QuoteAsset, error) {
	if err := p.pair.CheckOwnsPrice(currentPrice); err != nil {
		return quotes.QuoteAsset{}, errors.Wrap(err, "gross value")
	}
	return currentPrice.MulBase(p.numberOfTokens)
}

// ProfitAt returns gross value at the sale price minus the cost basis.
func (p Position) ProfitAt(salePrice quotes.Price) (quotes.QuoteAsset, error) {
	gross, err := p.GrossValueAt(salePrice)
	if err != nil {
		return quotes.QuoteAsset{}, err
	}
	cost, err := p.CostBasis()
	if err != nil {
		return quotes.QuoteAsset{}, err
	}
	return gross.Sub(cost)
}

// ROIAt returns the return on investment at the sale price as a plain
// percentage. The computation stays in exact decimals and narrows to a
// float only for the final result. A zero purchase price is an error.
func (p Position) ROIAt(salePrice quotes.Price) (float64, error) {
	if err := p.pair.CheckOwnsPrice(salePrice); err != nil {
		return 0, errors.Wrap(err, "roi")
	}
	if p.purchasePrice.IsZero() {
		return 0, errors.Wrap(quotes.ErrDivisionByZero, "roi with zero purchase price")
	}
	roi := salePrice.Value().
		Sub(p.purchasePrice.Value()).
		Div(p.purchasePrice.Value()).
		Mul(decimal.NewFromInt(100))
	return roi.InexactFloat64(), nil
}

// PotentialProfit returns the profit if sold at the expected sale price.
func (p Position) PotentialProfit() (quotes.QuoteAsset, error) {
	return p.ProfitAt(p.expectedSalePrice)
}

// PotentialROI returns the ROI if sold at the expected sale price.
func (p Position) PotentialROI() (float64, error) {
	return p.ROIAt(p.expectedSalePrice)
}

// ShouldSellAt reports whether the market price has reached the sell target.
func (p Position) ShouldSellAt(currentPrice quotes.Price) (bool, error) {
	cmp, err := currentPrice.Cmp(p.expectedSalePrice)
	if err != nil {
		return false, errors.Wrap(err, "sell signal")
	}
	return cmp >= 0, nil
}

// ShouldBuyDCAAt reports whether the market price has dropped to the next
// scheduled purchase threshold.
func (p Position) ShouldBuyDCAAt(currentPrice quotes.Price) (bool, error) {
	cmp, err := currentPrice.Cmp(p.nextPurchasePrice)
	if err != nil {
		return false, errors.Wrap(err, "dca signal")
	}
	return cmp <= 0, nil
}

// IsProfitableAt reports whether selling at the given price leaves a
// strictly positive profit.
func (p Position) IsProfitableAt(currentPrice quotes.Price) (bool, error) {
	profit, err := p.ProfitAt(currentPrice)
	if err != nil {
		return false, err
	}
	return profit.IsPositive(), nil
}

// WithExpectedSalePrice returns a copy of the position with only the sell
// target replaced.
func (p Position) WithExpectedSalePrice(newPrice quotes.Price) (Position, error) {
	if err := p.pair.CheckOwnsPrice(newPrice); err != nil {
		return Position{}, errors.Wrap(err, "adjust expected sale price")
	}
	out := p
	out.expectedSalePrice = newPrice
	return out, nil
}

// ApplyTrailingStop ratchets the sell target upward. The candidate target
// is currentPrice * (1 - trailPct), computed in exact decimals; the position
// is only updated when the candidate exceeds the current target, so the
// stop never moves down. Otherwise the position is returned unchanged.
func (p Position) ApplyTrailingStop(currentPrice quotes.Price, trailPct float64) (Position, error) {
	if err := p.pair.CheckOwnsPrice(currentPrice); err != nil {
		return Position{}, errors.Wrap(err, "trailing stop")
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(trailPct))
	candidate := p.pair.PriceFromDecimal(currentPrice.Value().Mul(factor))

	cmp, err := candidate.Cmp(p.expectedSalePrice)
	if err != nil {
		return Position{}, errors.Wrap(err, "trailing stop")
	}
	if cmp <= 0 {
		return p, nil
	}
	return p.WithExpectedSalePrice(candidate)
}

// Equal reports identity equality: two positions with the same id are the
// same position even when other fields differ.
func (p Position) Equal(other Position) bool {
	return p.id != "" && p.id == other.id
}

// String returns a short human-readable summary.
func (p Position) String() string {
	return fmt.Sprintf("position %s %s tokens=%s purchase=%s target=%s",
		p.id, p.pair.ID(), p.numberOfTokens.Amount().String(),
		p.purchasePrice.Value().String(), p.expectedSalePrice.Value().String())
}
