package portfolio

import (
	"errors"

	portfsvc "folio-backend/internal/application/portfolio"
	quotesvc "folio-backend/internal/application/quotes"
	"folio-backend/internal/domain"
	"folio-backend/internal/pkg/response"
	"folio-backend/internal/pkg/valuation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *portfsvc.Service
	Quotes  *quotesvc.Service
}

// HoldingLine is a holding plus its computed valuation, rounded for display.
type HoldingLine struct {
	domain.Holding
	Value           float64 `json:"value"`
	Cost            float64 `json:"cost"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

func toLine(h domain.Holding) HoldingLine {
	return HoldingLine{
		Holding:         h,
		Value:           valuation.Round2(valuation.LineValue(h)),
		Cost:            valuation.Round2(valuation.LineCost(h)),
		GainLoss:        valuation.Round2(valuation.LineGainLoss(h)),
		GainLossPercent: valuation.Round2(valuation.LinePercent(h)),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, portfsvc.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, portfsvc.ErrInvalidSymbol),
		errors.Is(err, portfsvc.ErrInvalidAssetClass),
		errors.Is(err, portfsvc.ErrInvalidQuantity),
		errors.Is(err, portfsvc.ErrInvalidPrice):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// GET /api/v1/portfolio/view-holdings
func (h *Handlers) ViewHoldings(c *fiber.Ctx) error {
	holdings := h.Service.Holdings()
	lines := make([]HoldingLine, len(holdings))
	for i, hd := range holdings {
		lines[i] = toLine(hd)
	}
	return response.Success(c, "Holdings fetched successfully", lines, fiber.Map{"count": len(lines)})
}

// GET /api/v1/portfolio/view-summary
func (h *Handlers) ViewSummary(c *fiber.Ctx) error {
	s := h.Service.Summary()
	s.TotalValue = valuation.Round2(s.TotalValue)
	s.TotalCost = valuation.Round2(s.TotalCost)
	s.TotalGainLoss = valuation.Round2(s.TotalGainLoss)
	s.TotalGainPercent = valuation.Round2(s.TotalGainPercent)
	return response.Success(c, "Portfolio summary fetched successfully", s, nil)
}

type addHoldingRequest struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Quantity      float64  `json:"quantity"`
	PurchasePrice float64  `json:"purchase_price"`
	CurrentPrice  *float64 `json:"current_price"`
}

// POST /api/v1/portfolio/add-holding
// current_price comes from the search selection when present; otherwise the
// quote service supplies one (live, fallback table, or default).
func (h *Handlers) AddHolding(c *fiber.Ctx) error {
	var req addHoldingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := portfsvc.AddInput{
		Symbol:        req.Symbol,
		Name:          req.Name,
		AssetClass:    domain.AssetClass(req.Type),
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	}
	if req.CurrentPrice != nil {
		in.CurrentPrice = *req.CurrentPrice
	} else if in.AssetClass.Valid() {
		in.CurrentPrice = h.Quotes.Quote(c.Context(), req.Symbol, in.AssetClass).Price
	}

	holding, err := h.Service.Add(c.Context(), in)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.SuccessCreated(c, "Holding added successfully", toLine(holding), nil)
}

type editHoldingRequest struct {
	HoldingID     string  `json:"holding_id"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
}

// PUT /api/v1/portfolio/edit-holding
func (h *Handlers) EditHolding(c *fiber.Ctx) error {
	var req editHoldingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	id, err := uuid.Parse(req.HoldingID)
	if err != nil {
		return response.Error(c, "holding_id must be a valid id", fiber.StatusBadRequest, nil)
	}

	holding, err := h.Service.Update(c.Context(), id, req.Quantity, req.PurchasePrice)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Holding updated successfully", toLine(holding), nil)
}

// DELETE /api/v1/portfolio/remove-holding?holding_id=...
func (h *Handlers) RemoveHolding(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("holding_id"))
	if err != nil {
		return response.Error(c, "holding_id must be a valid id", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.Remove(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Holding removed successfully", fiber.Map{"holding_id": id}, nil)
}

// POST /api/v1/portfolio/refresh-prices
func (h *Handlers) RefreshPrices(c *fiber.Ctx) error {
	updated, err := h.Service.RefreshPrices(c.Context(), h.Quotes)
	if err != nil {
		return response.Error(c, err.Error(), statusFor(err), nil)
	}
	return response.Success(c, "Prices refreshed successfully", fiber.Map{"updated": updated}, nil)
}
