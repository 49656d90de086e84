// Package report renders a portfolio summary for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/venantvr/go-trading-objects/internal/domain"
	"github.com/venantvr/go-trading-objects/internal/quotes"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warn      = lipgloss.AdaptiveColor{Light: "#D94F70", Dark: "#F25D94"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	gainStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(warn).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(subtle).
			MarginTop(1)
)

// Row is one evaluated position.
type Row struct {
	ID         string
	Tokens     quotes.BaseAsset
	Purchase   quotes.Price
	Target     quotes.Price
	ROI        float64
	Profit     quotes.QuoteAsset
	Sell       bool
	DCA        bool
	Profitable bool
}

// Summary is a fully evaluated portfolio.
type Summary struct {
	Pair         *quotes.Pair
	CurrentPrice quotes.Price
	Rows         []Row
	TotalCost    quotes.QuoteAsset
	TotalValue   quotes.QuoteAsset
	AverageEntry quotes.Price
	AggregateROI float64
}

// Evaluate computes every row and the portfolio aggregates at the given
// market price.
func Evaluate(pair *quotes.Pair, positions []domain.Position, currentPrice quotes.Price) (Summary, error) {
	summary := Summary{
		Pair:         pair,
		CurrentPrice: currentPrice,
		Rows:         make([]Row, 0, len(positions)),
	}

	for _, pos := range positions {
		roi, err := pos.ROIAt(currentPrice)
		if err != nil {
			return Summary{}, err
		}
		profit, err := pos.ProfitAt(currentPrice)
		if err != nil {
			return Summary{}, err
		}
		sell, err := pos.ShouldSellAt(currentPrice)
		if err != nil {
			return Summary{}, err
		}
		dca, err := pos.ShouldBuyDCAAt(currentPrice)
		if err != nil {
			return Summary{}, err
		}

		summary.Rows = append(summary.Rows, Row{
			ID:         pos.ID(),
			Tokens:     pos.NumberOfTokens(),
			Purchase:   pos.PurchasePrice(),
			Target:     pos.ExpectedSalePrice(),
			ROI:        roi,
			Profit:     profit,
			Sell:       sell,
			DCA:        dca,
			Profitable: profit.IsPositive(),
		})
	}

	var err error
	summary.TotalCost, err = domain.TotalCostBasis(pair, positions)
	if err != nil {
		return Summary{}, err
	}
	summary.TotalValue, err = domain.TotalValue(pair, positions, currentPrice)
	if err != nil {
		return Summary{}, err
	}

	if len(positions) > 0 && !summary.TotalCost.IsZero() {
		summary.AverageEntry, err = domain.WeightedAveragePrice(pair, positions)
		if err != nil {
			return Summary{}, err
		}
		summary.AggregateROI, err = domain.AggregateROI(pair, positions, currentPrice)
		if err != nil {
			return Summary{}, err
		}
	}

	return summary, nil
}

// Render formats the summary for the terminal.
func Render(s Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("PORTFOLIO %s @ %s", s.Pair.ID(), s.CurrentPrice.String())))
	b.WriteString("\n")

	if len(s.Rows) == 0 {
		b.WriteString(footerStyle.Render("no open positions"))
		b.WriteString("\n")
		return b.String()
	}

	for _, row := range s.Rows {
		roiStyle := gainStyle
		if row.ROI < 0 {
			roiStyle = lossStyle
		}

		signal := "hold"
		switch {
		case row.Sell:
			signal = "SELL"
		case row.DCA:
			signal = "DCA BUY"
		}

		line := cellStyle.Render(shortID(row.ID)) +
			cellStyle.Render(row.Tokens.String()) +
			cellStyle.Render("in "+row.Purchase.String()) +
			cellStyle.Render("target "+row.Target.String()) +
			roiStyle.Render(fmt.Sprintf("%+.2f%%", row.ROI)) +
			cellStyle.Render("  "+row.Profit.String()) +
			cellStyle.Render(signal)
		b.WriteString(line)
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("cost %s  value %s", s.TotalCost.String(), s.TotalValue.String())
	if !s.TotalCost.IsZero() {
		footer += fmt.Sprintf("  avg entry %s  roi %+.2f%%", s.AverageEntry.String(), s.AggregateROI)
	}
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")

	return b.String()
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
