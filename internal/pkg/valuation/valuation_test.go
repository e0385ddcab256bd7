package valuation

import (
	"math"
	"math/rand"
	"testing"

	"folio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

// Reference vector: AAPL, 10 @ 150 bought, 185.92 now.
func TestLineMetrics_ReferenceVector(t *testing.T) {
	h := domain.Holding{
		Symbol:        "AAPL",
		AssetClass:    domain.AssetStock,
		Quantity:      10,
		PurchasePrice: 150,
		CurrentPrice:  185.92,
	}

	assert.Equal(t, 1859.20, Round2(LineValue(h)))
	assert.Equal(t, 1500.00, Round2(LineCost(h)))
	assert.Equal(t, 359.20, Round2(LineGainLoss(h)))
	assert.Equal(t, 23.95, Round2(LinePercent(h)))
}

func TestLinePercent_ZeroCost(t *testing.T) {
	h := domain.Holding{Quantity: 0, PurchasePrice: 0, CurrentPrice: 50}
	assert.Equal(t, 0.0, LinePercent(h))
	assert.False(t, math.IsNaN(LinePercent(h)))
}

// For any holding with cost > 0: gainLoss = value - cost and
// percent = 100 * gainLoss / cost, exactly.
func TestLineMetrics_Identities(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		h := domain.Holding{
			Quantity:      rng.Float64()*1000 + 0.0001,
			PurchasePrice: rng.Float64()*5000 + 0.0001,
			CurrentPrice:  rng.Float64() * 10000,
		}
		assert.Equal(t, LineValue(h)-LineCost(h), LineGainLoss(h))
		assert.Equal(t, LineGainLoss(h)/LineCost(h)*100, LinePercent(h))
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.HoldingCount)
	assert.Equal(t, 0.0, s.TotalValue)
	assert.Equal(t, 0.0, s.TotalCost)
	assert.Equal(t, 0.0, s.TotalGainLoss)
	assert.Equal(t, 0.0, s.TotalGainPercent)
	assert.False(t, math.IsNaN(s.TotalGainPercent))
}

func TestSummarize_MatchesLineSums(t *testing.T) {
	holdings := []domain.Holding{
		{Symbol: "AAPL", Quantity: 10, PurchasePrice: 150, CurrentPrice: 185.92},
		{Symbol: "BTC", Quantity: 0.5, PurchasePrice: 40000, CurrentPrice: 43521.5},
		{Symbol: "MSFT", Quantity: 3, PurchasePrice: 420, CurrentPrice: 401.1},
	}

	var value, cost float64
	for _, h := range holdings {
		value += LineValue(h)
		cost += LineCost(h)
	}

	s := Summarize(holdings)
	assert.Equal(t, 3, s.HoldingCount)
	assert.Equal(t, value, s.TotalValue)
	assert.Equal(t, cost, s.TotalCost)
	assert.Equal(t, value-cost, s.TotalGainLoss)
	assert.InDelta(t, (value-cost)/cost*100, s.TotalGainPercent, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 23.95, Round2(23.946666))
	assert.Equal(t, -1.26, Round2(-1.2567))
	assert.Equal(t, 0.0, Round2(0))
}
