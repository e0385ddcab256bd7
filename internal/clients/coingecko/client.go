package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"folio-backend/internal/domain"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.coingecko.com"

// Client talks to the public CoinGecko API for crypto symbol search and
// quotes. No API key required; BaseURL is overridable for tests.
type Client struct {
	BaseURL string
	client  *http.Client
	log     zerolog.Logger
}

func New(log zerolog.Logger) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "coingecko").Logger(),
	}
}

type coin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type searchResponse struct {
	Coins []coin `json:"coins"`
}

// Search queries /api/v3/search and maps coins to crypto assets.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Asset, error) {
	coins, err := c.searchCoins(ctx, query)
	if err != nil {
		return nil, err
	}

	assets := make([]domain.Asset, 0, len(coins))
	for _, co := range coins {
		if co.Symbol == "" {
			continue
		}
		assets = append(assets, domain.Asset{
			Symbol:     strings.ToUpper(co.Symbol),
			Name:       co.Name,
			AssetClass: domain.AssetCrypto,
		})
	}
	return assets, nil
}

// Quote resolves the symbol to a coin id via /search, then reads the USD
// price from /simple/price.
func (c *Client) Quote(ctx context.Context, symbol string) (float64, error) {
	coins, err := c.searchCoins(ctx, symbol)
	if err != nil {
		return 0, err
	}

	id := ""
	for _, co := range coins {
		if strings.EqualFold(co.Symbol, symbol) {
			id = co.ID
			break
		}
	}
	if id == "" && len(coins) > 0 {
		id = coins[0].ID
	}
	if id == "" {
		return 0, fmt.Errorf("no coin found for %s", symbol)
	}

	params := url.Values{"ids": {id}, "vs_currencies": {"usd"}}
	body, err := c.get(ctx, "/api/v3/simple/price?"+params.Encode())
	if err != nil {
		return 0, err
	}

	var prices map[string]map[string]float64
	if err := json.Unmarshal(body, &prices); err != nil {
		return 0, fmt.Errorf("parse price response: %w", err)
	}

	price := prices[id]["usd"]
	if price <= 0 {
		return 0, fmt.Errorf("no usd price for %s", id)
	}
	return price, nil
}

func (c *Client) searchCoins(ctx context.Context, query string) ([]coin, error) {
	params := url.Values{"query": {query}}
	body, err := c.get(ctx, "/api/v3/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var data searchResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return data.Coins, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
