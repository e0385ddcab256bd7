package quotes

import (
	quotesvc "folio-backend/internal/application/quotes"
	"folio-backend/internal/domain"
	"folio-backend/internal/pkg/response"
	"folio-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *quotesvc.Service
}

// GET /api/v1/quotes/:symbol?type=stock|crypto
func (h *Handlers) GetQuote(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	if !validation.IsValidSymbol(symbol) {
		return response.Error(c, "A valid ticker symbol is required", fiber.StatusBadRequest, nil)
	}

	class := domain.AssetClass(c.Query("type", string(domain.AssetStock)))
	if !class.Valid() {
		return response.Error(c, "Asset type must be stock or crypto", fiber.StatusBadRequest, nil)
	}

	q := h.Service.Quote(c.Context(), symbol, class)
	return response.Success(c, "Quote fetched successfully", q, nil)
}
