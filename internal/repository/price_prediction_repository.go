package repository

import (
	"context"

	"stocksage/internal/entity"

	"gorm.io/gorm"
)

// PricePredictionRepository defines the interface for prediction data
// operations.
type PricePredictionRepository interface {
	Create(ctx context.Context, prediction *entity.PricePrediction) error
	FindLatestBySymbol(ctx context.Context, symbol string) (*entity.PricePrediction, error)
}

// NewPricePredictionRepository creates a new GORM-based prediction repository.
func NewPricePredictionRepository(db *gorm.DB) PricePredictionRepository {
	return &pricePredictionRepository{db: db}
}

type pricePredictionRepository struct {
	db *gorm.DB
}

func (r *pricePredictionRepository) Create(ctx context.Context, prediction *entity.PricePrediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

func (r *pricePredictionRepository) FindLatestBySymbol(ctx context.Context, symbol string) (*entity.PricePrediction, error) {
	var prediction entity.PricePrediction
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		First(&prediction).Error
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}
