package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssetClass routes a symbol to the right external lookup source.
type AssetClass string

const (
	AssetStock  AssetClass = "stock"
	AssetCrypto AssetClass = "crypto"
)

// Valid reports whether the class is one of the two known asset classes.
func (a AssetClass) Valid() bool {
	return a == AssetStock || a == AssetCrypto
}

// Holding is one portfolio entry: ownership of a quantity of a symbol at a
// recorded purchase price. CurrentPrice is set when the holding is added and
// only changes again through an explicit refresh.
type Holding struct {
	ID            uuid.UUID  `json:"id"`
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	AssetClass    AssetClass `json:"type"`
	Quantity      float64    `json:"quantity"`
	PurchasePrice float64    `json:"purchasePrice"`
	CurrentPrice  float64    `json:"currentPrice"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
