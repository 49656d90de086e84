package domain

import (
	"time"

	"github.com/pkg/errors"

	"github.com/venantvr/go-trading-objects/internal/quotes"
)

// PositionRecord is the boundary representation of a Position: a flat
// structure of primitives suitable for JSON serialization or event
// publishing. This is the single point where exact decimals are
// deliberately narrowed to floats; PositionFromRecord widens them back
// through the pair factory.
type PositionRecord struct {
	ID                string     `json:"id"`
	ShortID           *int64     `json:"short_id,omitempty"`
	Pair              string     `json:"pair"`
	PurchasePrice     float64    `json:"purchase_price"`
	NumberOfTokens    float64    `json:"number_of_tokens"`
	ExpectedSalePrice float64    `json:"expected_sale_price"`
	NextPurchasePrice float64    `json:"next_purchase_price"`
	Variations        Variations `json:"variations"`
	StrategyTag       string     `json:"strategy_tag"`
	Notes             string     `json:"notes,omitempty"`
	Timestamp         time.Time  `json:"timestamp"`
}

// Record converts the position into its boundary representation.
func (p Position) Record() PositionRecord {
	return PositionRecord{
		ID:                p.id,
		ShortID:           p.shortID,
		Pair:              p.pair.ID(),
		PurchasePrice:     p.purchasePrice.Value().InexactFloat64(),
		NumberOfTokens:    p.numberOfTokens.Amount().InexactFloat64(),
		ExpectedSalePrice: p.expectedSalePrice.Value().InexactFloat64(),
		NextPurchasePrice: p.nextPurchasePrice.Value().InexactFloat64(),
		Variations:        p.variations,
		StrategyTag:       p.strategyTag,
		Notes:             p.notes,
		Timestamp:         p.timestamp,
	}
}

// PositionFromRecord rebuilds a position from its boundary representation,
// minting every numeric field through the supplied pair factory. The
// factory must match the record's pair field.
func PositionFromRecord(rec PositionRecord, pair *quotes.Pair) (Position, error) {
	if pair == nil {
		return Position{}, errors.Wrap(quotes.ErrValidation, "record requires a pair")
	}
	if rec.Pair != pair.ID() {
		return Position{}, errors.Wrapf(quotes.ErrPairMismatch,
			"record pair %q does not match factory pair %q", rec.Pair, pair.ID())
	}
	if rec.ID == "" {
		return Position{}, errors.Wrap(quotes.ErrValidation, "record is missing an id")
	}

	return NewPosition(pair, PositionParams{
		ID:                rec.ID,
		ShortID:           rec.ShortID,
		PurchasePrice:     pair.NewPrice(rec.PurchasePrice),
		NumberOfTokens:    pair.NewBaseAsset(rec.NumberOfTokens),
		ExpectedSalePrice: pair.NewPrice(rec.ExpectedSalePrice),
		NextPurchasePrice: pair.NewPrice(rec.NextPurchasePrice),
		Variations:        rec.Variations,
		StrategyTag:       rec.StrategyTag,
		Notes:             rec.Notes,
		Timestamp:         rec.Timestamp,
	})
}
