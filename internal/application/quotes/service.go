package quotes

import (
	"context"
	"strings"

	"folio-backend/internal/domain"

	"github.com/rs/zerolog/log"
)

// Provider returns a current price for one symbol from a live source.
type Provider interface {
	Quote(ctx context.Context, symbol string) (float64, error)
}

// DefaultPrice is the last-resort constant when neither the live source nor
// the fallback table knows the symbol.
const DefaultPrice = 100.0

// Fixed per-symbol fallback prices, used when the live lookup fails or no
// provider is configured. Lookup failures are never surfaced to the caller.
var stockFallback = map[string]float64{
	"AAPL":  185.92,
	"GOOGL": 139.68,
	"MSFT":  401.10,
	"AMZN":  174.42,
	"TSLA":  248.50,
	"NVDA":  118.11,
	"META":  474.99,
}

var cryptoFallback = map[string]float64{
	"BTC":  43521.50,
	"ETH":  2284.75,
	"SOL":  98.42,
	"ADA":  0.59,
	"DOGE": 0.08,
}

// Service answers quote lookups, degrading from the live provider to the
// fallback table to DefaultPrice. It never returns an error.
type Service struct {
	Stocks Provider
	Crypto Provider
}

// Quote returns a price for symbol in the given asset class. The quote's
// Source field reports which tier answered.
func (s *Service) Quote(ctx context.Context, symbol string, class domain.AssetClass) domain.Quote {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	q := domain.Quote{Symbol: symbol, AssetClass: class}

	provider := s.Stocks
	fallback := stockFallback
	if class == domain.AssetCrypto {
		provider = s.Crypto
		fallback = cryptoFallback
	}

	if provider != nil {
		price, err := provider.Quote(ctx, symbol)
		if err == nil {
			q.Price = price
			q.Source = domain.QuoteSourceLive
			return q
		}
		log.Warn().Err(err).Str("symbol", symbol).Str("class", string(class)).Msg("Live quote failed, using fallback")
	}

	if price, ok := fallback[symbol]; ok {
		q.Price = price
		q.Source = domain.QuoteSourceFallback
		return q
	}

	q.Price = DefaultPrice
	q.Source = domain.QuoteSourceDefault
	return q
}
