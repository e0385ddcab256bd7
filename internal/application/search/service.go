package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"folio-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Searcher returns symbol candidates for a free-text query from one source.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Asset, error)
}

const (
	// MinQueryLength: shorter queries stay in the idle state and are rejected.
	MinQueryLength = 2
	// MaxResults caps the merged stocks+crypto result list.
	MaxResults = 10

	cachePrefix = "search:"
	cacheTTL    = 5 * time.Minute
)

var ErrQueryTooShort = errors.New("Query must be at least 2 characters")

// Service merges symbol search results from the per-class sources. The two
// classes are fetched concurrently and independently: a failure in one
// degrades to an empty sub-list instead of failing the whole query. Results
// are cached in Redis when a client is configured.
type Service struct {
	Stocks Searcher
	Crypto Searcher
	Rdb    *redis.Client

	// gen numbers queries so a superseded search never writes the cache.
	gen atomic.Int64
}

// Search returns up to MaxResults candidates for query, stocks first.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Asset, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	key := cachePrefix + strings.ToLower(query)
	if s.Rdb != nil {
		if b, err := s.Rdb.Get(ctx, key).Bytes(); err == nil {
			var cached []domain.Asset
			if json.Unmarshal(b, &cached) == nil {
				return cached, nil
			}
		}
	}

	generation := s.gen.Add(1)

	var (
		wg      sync.WaitGroup
		stocks  []domain.Asset
		cryptos []domain.Asset
	)
	fetch := func(src Searcher, class string, out *[]domain.Asset) {
		defer wg.Done()
		if src == nil {
			return
		}
		assets, err := src.Search(ctx, query)
		if err != nil {
			log.Warn().Err(err).Str("class", class).Str("query", query).Msg("Symbol search source failed")
			return
		}
		*out = assets
	}
	wg.Add(2)
	go fetch(s.Stocks, string(domain.AssetStock), &stocks)
	go fetch(s.Crypto, string(domain.AssetCrypto), &cryptos)
	wg.Wait()

	merged := make([]domain.Asset, 0, len(stocks)+len(cryptos))
	merged = append(merged, stocks...)
	merged = append(merged, cryptos...)
	if len(merged) > MaxResults {
		merged = merged[:MaxResults]
	}

	// A newer query has started since this one; its results are still
	// returned to the caller that asked, but must not poison the cache.
	if s.Rdb != nil && s.gen.Load() == generation {
		if b, err := json.Marshal(merged); err == nil {
			if err := s.Rdb.Set(ctx, key, b, cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("query", query).Msg("Search cache write failed")
			}
		}
	}

	return merged, nil
}
