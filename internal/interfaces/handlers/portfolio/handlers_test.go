package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	portfsvc "folio-backend/internal/application/portfolio"
	quotesvc "folio-backend/internal/application/quotes"
	"folio-backend/internal/domain"
	"folio-backend/internal/infrastructure/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPortfolioTest(t *testing.T) (*fiber.App, *portfsvc.Service) {
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "portfolio.json"))
	svc := portfsvc.NewService(context.Background(), fs)
	h := &Handlers{Service: svc, Quotes: &quotesvc.Service{}}

	app := fiber.New()
	g := app.Group("/api/v1/portfolio")
	g.Get("/view-holdings", h.ViewHoldings)
	g.Get("/view-summary", h.ViewSummary)
	g.Post("/add-holding", h.AddHolding)
	g.Put("/edit-holding", h.EditHolding)
	g.Delete("/remove-holding", h.RemoveHolding)
	g.Post("/refresh-prices", h.RefreshPrices)
	return app, svc
}

func postJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (map[string]interface{}, int) {
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out, resp.StatusCode
}

func TestAddHolding_CreatedWithValuation(t *testing.T) {
	app, _ := setupPortfolioTest(t)

	out, code := postJSON(t, app, "POST", "/api/v1/portfolio/add-holding", map[string]interface{}{
		"symbol": "aapl", "name": "Apple Inc.", "type": "stock",
		"quantity": 10, "purchase_price": 150, "current_price": 185.92,
	})
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "success", out["status"])

	data := out["data"].(map[string]interface{})
	assert.Equal(t, "AAPL", data["symbol"])
	assert.Equal(t, 1859.20, data["value"])
	assert.Equal(t, 1500.00, data["cost"])
	assert.Equal(t, 359.20, data["gainLoss"])
	assert.Equal(t, 23.95, data["gainLossPercent"])
}

// Without current_price in the body, the quote service supplies a fallback.
func TestAddHolding_QuoteFallbackPrice(t *testing.T) {
	app, svc := setupPortfolioTest(t)

	_, code := postJSON(t, app, "POST", "/api/v1/portfolio/add-holding", map[string]interface{}{
		"symbol": "BTC", "name": "Bitcoin", "type": "crypto",
		"quantity": 1, "purchase_price": 40000,
	})
	require.Equal(t, fiber.StatusCreated, code)

	holdings := svc.Holdings()
	require.Len(t, holdings, 1)
	assert.Equal(t, 43521.50, holdings[0].CurrentPrice)
}

func TestAddHolding_InvalidQuantity(t *testing.T) {
	app, svc := setupPortfolioTest(t)

	out, code := postJSON(t, app, "POST", "/api/v1/portfolio/add-holding", map[string]interface{}{
		"symbol": "AAPL", "type": "stock", "quantity": 0, "purchase_price": 150,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "error", out["status"])
	assert.Empty(t, svc.Holdings())
}

func TestEditHolding_RoundTrip(t *testing.T) {
	app, svc := setupPortfolioTest(t)
	h, err := svc.Add(context.Background(), portfsvc.AddInput{
		Symbol: "AAPL", AssetClass: domain.AssetStock, Quantity: 10, PurchasePrice: 150, CurrentPrice: 185.92,
	})
	require.NoError(t, err)

	out, code := postJSON(t, app, "PUT", "/api/v1/portfolio/edit-holding", map[string]interface{}{
		"holding_id": h.ID.String(), "quantity": 20, "purchase_price": 140,
	})
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, 20.0, data["quantity"])
	assert.Equal(t, 140.0, data["purchasePrice"])
}

func TestEditHolding_InvalidValuesRejected(t *testing.T) {
	app, svc := setupPortfolioTest(t)
	h, err := svc.Add(context.Background(), portfsvc.AddInput{
		Symbol: "AAPL", AssetClass: domain.AssetStock, Quantity: 10, PurchasePrice: 150, CurrentPrice: 185.92,
	})
	require.NoError(t, err)

	_, code := postJSON(t, app, "PUT", "/api/v1/portfolio/edit-holding", map[string]interface{}{
		"holding_id": h.ID.String(), "quantity": 0, "purchase_price": -1,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, h, svc.Holdings()[0])
}

func TestEditHolding_BadID(t *testing.T) {
	app, _ := setupPortfolioTest(t)
	_, code := postJSON(t, app, "PUT", "/api/v1/portfolio/edit-holding", map[string]interface{}{
		"holding_id": "not-a-uuid", "quantity": 1, "purchase_price": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestEditHolding_UnknownID(t *testing.T) {
	app, _ := setupPortfolioTest(t)
	_, code := postJSON(t, app, "PUT", "/api/v1/portfolio/edit-holding", map[string]interface{}{
		"holding_id": uuid.New().String(), "quantity": 1, "purchase_price": 1,
	})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestRemoveHolding(t *testing.T) {
	app, svc := setupPortfolioTest(t)
	h, err := svc.Add(context.Background(), portfsvc.AddInput{
		Symbol: "AAPL", AssetClass: domain.AssetStock, Quantity: 10, PurchasePrice: 150, CurrentPrice: 185.92,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/portfolio/remove-holding?holding_id=%s", h.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, svc.Holdings())
}

func TestViewSummary_EmptyPortfolio(t *testing.T) {
	app, _ := setupPortfolioTest(t)

	req := httptest.NewRequest("GET", "/api/v1/portfolio/view-summary", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	data := out["data"].(map[string]interface{})
	assert.Equal(t, 0.0, data["total_gain_percent"])
	assert.Equal(t, 0.0, data["total_value"])
}

func TestViewHoldings_ListsLines(t *testing.T) {
	app, svc := setupPortfolioTest(t)
	for _, sym := range []string{"AAPL", "MSFT"} {
		_, err := svc.Add(context.Background(), portfsvc.AddInput{
			Symbol: sym, AssetClass: domain.AssetStock, Quantity: 1, PurchasePrice: 100, CurrentPrice: 110,
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/api/v1/portfolio/view-holdings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	list := out["data"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "AAPL", first["symbol"])
	assert.Equal(t, 10.0, first["gainLoss"])
	meta := out["metadata"].(map[string]interface{})
	assert.Equal(t, 2.0, meta["count"])
}

func TestRefreshPrices_UsesQuoteFallback(t *testing.T) {
	app, svc := setupPortfolioTest(t)
	_, err := svc.Add(context.Background(), portfsvc.AddInput{
		Symbol: "ETH", AssetClass: domain.AssetCrypto, Quantity: 2, PurchasePrice: 2000, CurrentPrice: 1,
	})
	require.NoError(t, err)

	out, code := postJSON(t, app, "POST", "/api/v1/portfolio/refresh-prices", map[string]interface{}{})
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["updated"])
	assert.Equal(t, 2284.75, svc.Holdings()[0].CurrentPrice)
}
