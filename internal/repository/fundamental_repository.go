package repository

import (
	"context"

	"stocksage/internal/entity"

	"gorm.io/gorm"
)

// FundamentalRepository defines the interface for fundamental snapshot data
// operations.
type FundamentalRepository interface {
	Create(ctx context.Context, snapshot *entity.FundamentalSnapshot) error
	FindLatestBySymbol(ctx context.Context, symbol string) (*entity.FundamentalSnapshot, error)
}

// NewFundamentalRepository creates a new GORM-based fundamental repository.
func NewFundamentalRepository(db *gorm.DB) FundamentalRepository {
	return &fundamentalRepository{db: db}
}

type fundamentalRepository struct {
	db *gorm.DB
}

func (r *fundamentalRepository) Create(ctx context.Context, snapshot *entity.FundamentalSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *fundamentalRepository) FindLatestBySymbol(ctx context.Context, symbol string) (*entity.FundamentalSnapshot, error) {
	var snapshot entity.FundamentalSnapshot
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
