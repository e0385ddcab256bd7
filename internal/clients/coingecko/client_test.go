package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio-backend/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(zerolog.Nop())
	c.BaseURL = srv.URL
	return c
}

func TestSearch_ParsesCoins(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/search", r.URL.Path)
		assert.Equal(t, "bit", r.URL.Query().Get("query"))
		w.Write([]byte(`{"coins":[
			{"id":"bitcoin","name":"Bitcoin","symbol":"btc"},
			{"id":"bitcoin-cash","name":"Bitcoin Cash","symbol":"bch"}
		]}`))
	})

	assets, err := c.Search(context.Background(), "bit")
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "BTC", assets[0].Symbol)
	assert.Equal(t, "Bitcoin", assets[0].Name)
	assert.Equal(t, domain.AssetCrypto, assets[0].AssetClass)
}

func TestQuote_ResolvesIDThenPrices(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/search":
			w.Write([]byte(`{"coins":[{"id":"bitcoin","name":"Bitcoin","symbol":"btc"}]}`))
		case "/api/v3/simple/price":
			assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
			w.Write([]byte(`{"bitcoin":{"usd":43521.5}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	price, err := c.Quote(context.Background(), "BTC")
	require.NoError(t, err)
	assert.Equal(t, 43521.5, price)
}

func TestQuote_NoCoinFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins":[]}`))
	})

	_, err := c.Quote(context.Background(), "NOPE")
	assert.Error(t, err)
}
