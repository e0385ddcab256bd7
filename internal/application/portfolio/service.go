package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"folio-backend/internal/domain"
	"folio-backend/internal/infrastructure/store"
	"folio-backend/internal/pkg/validation"
	"folio-backend/internal/pkg/valuation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound          = errors.New("Holding not found")
	ErrInvalidSymbol     = errors.New("A valid ticker symbol is required")
	ErrInvalidAssetClass = errors.New("Asset type must be stock or crypto")
	ErrInvalidQuantity   = errors.New("Quantity must be a positive number")
	ErrInvalidPrice      = errors.New("Purchase price must be a positive number")
)

// QuoteSource supplies current prices for add-time pricing and refresh.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string, class domain.AssetClass) domain.Quote
}

// Service owns the ordered holding collection for the lifetime of the
// process. Every successful mutation synchronously rewrites the injected
// store's slot with the whole list; a failed write rolls the mutation back.
// The mutex is required because HTTP handlers run concurrently.
type Service struct {
	mu       sync.Mutex
	store    store.Store
	holdings []domain.Holding
}

// NewService loads the persisted collection. Any load or parse failure is
// logged and the service starts with an empty portfolio; the error is not
// surfaced to the user.
func NewService(ctx context.Context, st store.Store) *Service {
	holdings, err := st.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Portfolio load failed, starting empty")
		holdings = nil
	}
	return &Service{store: st, holdings: holdings}
}

// AddInput carries the fields collected by the add form. CurrentPrice is
// optional: from the search selection when present, otherwise the caller
// resolves one through a QuoteSource before calling Add.
type AddInput struct {
	Symbol        string
	Name          string
	AssetClass    domain.AssetClass
	Quantity      float64
	PurchasePrice float64
	CurrentPrice  float64
}

// Holdings returns a copy of the ordered collection.
func (s *Service) Holdings() []domain.Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

// Summary computes aggregate valuation over the current collection.
func (s *Service) Summary() valuation.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return valuation.Summarize(s.holdings)
}

// Add validates the input, appends a new holding and persists the collection.
func (s *Service) Add(ctx context.Context, in AddInput) (domain.Holding, error) {
	if !validation.IsValidSymbol(in.Symbol) {
		return domain.Holding{}, ErrInvalidSymbol
	}
	if !in.AssetClass.Valid() {
		return domain.Holding{}, ErrInvalidAssetClass
	}
	if !validation.IsPositiveAmount(in.Quantity) {
		return domain.Holding{}, ErrInvalidQuantity
	}
	if !validation.IsPositiveAmount(in.PurchasePrice) {
		return domain.Holding{}, ErrInvalidPrice
	}
	if !validation.IsNonNegativeAmount(in.CurrentPrice) {
		in.CurrentPrice = 0
	}

	now := time.Now().UTC()
	h := domain.Holding{
		ID:            uuid.New(),
		Symbol:        strings.ToUpper(strings.TrimSpace(in.Symbol)),
		Name:          strings.TrimSpace(in.Name),
		AssetClass:    in.AssetClass,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		CurrentPrice:  in.CurrentPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Holding, len(s.holdings), len(s.holdings)+1)
	copy(next, s.holdings)
	next = append(next, h)
	if err := s.persist(ctx, next); err != nil {
		return domain.Holding{}, err
	}
	return h, nil
}

// Update changes quantity and purchase price of an existing holding. Invalid
// values are rejected and the holding keeps its prior values; the current
// price is never touched here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, quantity, purchasePrice float64) (domain.Holding, error) {
	if !validation.IsPositiveAmount(quantity) {
		return domain.Holding{}, ErrInvalidQuantity
	}
	if !validation.IsPositiveAmount(purchasePrice) {
		return domain.Holding{}, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Holding{}, ErrNotFound
	}

	next := make([]domain.Holding, len(s.holdings))
	copy(next, s.holdings)
	next[idx].Quantity = quantity
	next[idx].PurchasePrice = purchasePrice
	next[idx].UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, next); err != nil {
		return domain.Holding{}, err
	}
	return next[idx], nil
}

// Remove deletes a holding by id, preserving the order of the rest.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	next := make([]domain.Holding, 0, len(s.holdings)-1)
	next = append(next, s.holdings[:idx]...)
	next = append(next, s.holdings[idx+1:]...)
	return s.persist(ctx, next)
}

// RefreshPrices re-quotes every holding's current price through src and
// persists once. Returns how many holdings were updated. Quote lookups never
// fail (they degrade internally), so the only error path is persistence.
func (s *Service) RefreshPrices(ctx context.Context, src QuoteSource) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.holdings) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	next := make([]domain.Holding, len(s.holdings))
	copy(next, s.holdings)

	updated := 0
	for i := range next {
		q := src.Quote(ctx, next[i].Symbol, next[i].AssetClass)
		if q.Price != next[i].CurrentPrice {
			next[i].CurrentPrice = q.Price
			next[i].UpdatedAt = now
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}
	if err := s.persist(ctx, next); err != nil {
		return 0, err
	}
	return updated, nil
}

// indexOf must be called with the mutex held.
func (s *Service) indexOf(id uuid.UUID) int {
	for i, h := range s.holdings {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// persist writes next to the store and only then replaces the in-memory
// collection, so a failed save leaves prior state intact. Callers hold the
// mutex.
func (s *Service) persist(ctx context.Context, next []domain.Holding) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("persist portfolio: %w", err)
	}
	s.holdings = next
	return nil
}
