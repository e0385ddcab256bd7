package store

import (
	"context"
	"errors"
	"time"

	"folio-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PortfolioSlot is one named key-value slot holding a serialized portfolio
// document. The table is a key-value store, not a relational model of
// holdings: the whole collection lives in one JSON payload per slot.
type PortfolioSlot struct {
	Slot      string         `gorm:"column:slot;primaryKey" json:"slot"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (PortfolioSlot) TableName() string {
	return "portfolio_slots"
}

// GormStore persists the portfolio document in a single database row.
type GormStore struct {
	DB   *gorm.DB
	Slot string
}

// NewGormStore migrates the slot table and returns a store bound to slot.
func NewGormStore(db *gorm.DB, slot string) (*GormStore, error) {
	if err := db.AutoMigrate(&PortfolioSlot{}); err != nil {
		return nil, err
	}
	return &GormStore{DB: db, Slot: slot}, nil
}

func (g *GormStore) Load(ctx context.Context) ([]domain.Holding, error) {
	var row PortfolioSlot
	err := g.DB.WithContext(ctx).Where("slot = ?", g.Slot).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return Decode(row.Payload)
}

func (g *GormStore) Save(ctx context.Context, holdings []domain.Holding) error {
	data, err := Encode(holdings)
	if err != nil {
		return err
	}
	row := PortfolioSlot{Slot: g.Slot, Payload: datatypes.JSON(data)}
	return g.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}
