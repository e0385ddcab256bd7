package valuation

import (
	"math"

	"folio-backend/internal/domain"
)

// Pure gain/loss arithmetic over holdings. Nothing here touches the store or
// the network; handlers round for presentation with Round2.

// LineValue is the current market value of one holding.
func LineValue(h domain.Holding) float64 {
	return h.CurrentPrice * h.Quantity
}

// LineCost is the amount originally paid for one holding.
func LineCost(h domain.Holding) float64 {
	return h.PurchasePrice * h.Quantity
}

// LineGainLoss is the unrealized gain (or loss, negative) of one holding.
func LineGainLoss(h domain.Holding) float64 {
	return LineValue(h) - LineCost(h)
}

// LinePercent is the gain/loss as a percentage of cost. Returns 0 when cost
// is 0 so callers never see NaN.
func LinePercent(h domain.Holding) float64 {
	cost := LineCost(h)
	if cost == 0 {
		return 0
	}
	return LineGainLoss(h) / cost * 100
}

// Summary aggregates the same metrics across a whole collection.
type Summary struct {
	HoldingCount     int     `json:"holding_count"`
	TotalValue       float64 `json:"total_value"`
	TotalCost        float64 `json:"total_cost"`
	TotalGainLoss    float64 `json:"total_gain_loss"`
	TotalGainPercent float64 `json:"total_gain_percent"`
}

// Summarize sums value and cost across holdings. The percent guards against
// division by zero: an empty collection reports 0, not NaN.
func Summarize(holdings []domain.Holding) Summary {
	s := Summary{HoldingCount: len(holdings)}
	for _, h := range holdings {
		s.TotalValue += LineValue(h)
		s.TotalCost += LineCost(h)
	}
	s.TotalGainLoss = s.TotalValue - s.TotalCost
	if s.TotalCost != 0 {
		s.TotalGainPercent = s.TotalGainLoss / s.TotalCost * 100
	}
	return s
}

// Round2 rounds to 2 decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
