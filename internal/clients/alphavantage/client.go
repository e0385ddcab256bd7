package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"folio-backend/internal/domain"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://www.alphavantage.co"

// Client talks to the Alpha Vantage REST API for stock symbol search and
// quotes. BaseURL is overridable for tests.
type Client struct {
	APIKey  string
	BaseURL string
	client  *http.Client
	log     zerolog.Logger
}

func New(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "alphavantage").Logger(),
	}
}

type searchResponse struct {
	BestMatches []map[string]string `json:"bestMatches"`
}

// Search queries SYMBOL_SEARCH and maps matches to stock assets.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Asset, error) {
	params := url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {query},
		"apikey":   {c.APIKey},
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var data searchResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse symbol search response: %w", err)
	}

	assets := make([]domain.Asset, 0, len(data.BestMatches))
	for _, m := range data.BestMatches {
		symbol := m["1. symbol"]
		if symbol == "" {
			continue
		}
		assets = append(assets, domain.Asset{
			Symbol:     symbol,
			Name:       m["2. name"],
			AssetClass: domain.AssetStock,
		})
	}
	return assets, nil
}

// Quote queries GLOBAL_QUOTE and returns the price from "05. price".
func (c *Client) Quote(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
		"apikey":   {c.APIKey},
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return 0, err
	}

	var data map[string]map[string]string
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("parse quote response: %w", err)
	}

	priceStr := data["Global Quote"]["05. price"]
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("no price in quote response for %s", symbol)
	}
	return price, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
