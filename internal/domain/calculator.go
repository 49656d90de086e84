package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/venantvr/go-trading-objects/internal/quotes"
)

// Portfolio aggregation over ordered collections of positions. All
// functions are pure and accumulate in exact decimals; only AggregateROI
// narrows to a float, and only for its final result. Every position must
// belong to the given pair.

func checkPositionPair(pair *quotes.Pair, pos Position) error {
	if pos.pair == nil || pos.pair.ID() != pair.ID() {
		return errors.Wrapf(quotes.ErrPairMismatch, "position %s does not belong to pair %s", pos.id, pair.ID())
	}
	return nil
}

// TotalCostBasis sums the cost bases of the positions. An empty collection
// yields the pair's zero quote amount.
func TotalCostBasis(pair *quotes.Pair, positions []Position) (quotes.QuoteAsset, error) {
	if pair == nil {
		return quotes.QuoteAsset{}, errors.Wrap(quotes.ErrValidation, "total cost basis requires a pair")
	}

	total := decimal.Zero
	for _, pos := range positions {
		if err := checkPositionPair(pair, pos); err != nil {
			return quotes.QuoteAsset{}, errors.Wrap(err, "total cost basis")
		}
		cost, err := pos.CostBasis()
		if err != nil {
			return quotes.QuoteAsset{}, errors.Wrap(err, "total cost basis")
		}
		total = total.Add(cost.Amount())
	}
	return pair.QuoteAssetFromDecimal(total), nil
}

// TotalValue sums the gross values of the positions at the given market
// price. An empty collection yields the pair's zero quote amount.
func TotalValue(pair *quotes.Pair, positions []Position, currentPrice quotes.Price) (quotes.QuoteAsset, error) {
	if pair == nil {
		return quotes.QuoteAsset{}, errors.Wrap(quotes.ErrValidation, "total value requires a pair")
	}
	if err := pair.CheckOwnsPrice(currentPrice); err != nil {
		return quotes.QuoteAsset{}, errors.Wrap(err, "total value")
	}

	total := decimal.Zero
	for _, pos := range positions {
		if err := checkPositionPair(pair, pos); err != nil {
			return quotes.QuoteAsset{}, errors.Wrap(err, "total value")
		}
		gross, err := pos.GrossValueAt(currentPrice)
		if err != nil {
			return quotes.QuoteAsset{}, errors.Wrap(err, "total value")
		}
		total = total.Add(gross.Amount())
	}
	return pair.QuoteAssetFromDecimal(total), nil
}

// WeightedAveragePrice returns the token-weighted average entry price:
// total cost basis over total tokens. A zero token total, including the
// empty collection, is an error rather than a placeholder price.
func WeightedAveragePrice(pair *quotes.Pair, positions []Position) (quotes.Price, error) {
	if pair == nil {
		return quotes.Price{}, errors.Wrap(quotes.ErrValidation, "weighted average requires a pair")
	}

	totalCost := decimal.Zero
	totalTokens := decimal.Zero
	for _, pos := range positions {
		if err := checkPositionPair(pair, pos); err != nil {
			return quotes.Price{}, errors.Wrap(err, "weighted average")
		}
		cost, err := pos.CostBasis()
		if err != nil {
			return quotes.Price{}, errors.Wrap(err, "weighted average")
		}
		totalCost = totalCost.Add(cost.Amount())
		totalTokens = totalTokens.Add(pos.numberOfTokens.Amount())
	}

	if totalTokens.IsZero() {
		return quotes.Price{}, errors.Wrap(quotes.ErrDivisionByZero, "weighted average with zero tokens")
	}
	return pair.PriceFromDecimal(totalCost.Div(totalTokens)), nil
}

// AggregateROI returns the portfolio-level return at the given market price
// as a plain percentage: (total value - total cost) / total cost * 100.
// A zero total cost basis is an error rather than infinity.
func AggregateROI(pair *quotes.Pair, positions []Position, currentPrice quotes.Price) (float64, error) {
	totalCost, err := TotalCostBasis(pair, positions)
	if err != nil {
		return 0, errors.Wrap(err, "aggregate roi")
	}
	totalValue, err := TotalValue(pair, positions, currentPrice)
	if err != nil {
		return 0, errors.Wrap(err, "aggregate roi")
	}

	if totalCost.Amount().IsZero() {
		return 0, errors.Wrap(quotes.ErrDivisionByZero, "aggregate roi with zero cost basis")
	}
	roi := totalValue.Amount().
		Sub(totalCost.Amount()).
		Div(totalCost.Amount()).
		Mul(decimal.NewFromInt(100))
	return roi.InexactFloat64(), nil
}
