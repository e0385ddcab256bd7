package search

import (
	"errors"

	searchsvc "folio-backend/internal/application/search"
	"folio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *searchsvc.Service
}

// GET /api/v1/search?query=...
func (h *Handlers) Search(c *fiber.Ctx) error {
	query := c.Query("query")

	assets, err := h.Service.Search(c.Context(), query)
	if err != nil {
		if errors.Is(err, searchsvc.ErrQueryTooShort) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Search completed successfully", assets, fiber.Map{
		"query": query,
		"count": len(assets),
	})
}
