package repository

import (
	"context"

	"stocksage/internal/entity"

	"gorm.io/gorm"
)

// PriceAlertRepository defines the interface for price alert data operations.
type PriceAlertRepository interface {
	Create(ctx context.Context, alert *entity.PriceAlert) error
	FindAll(ctx context.Context) ([]entity.PriceAlert, error)
	FindActive(ctx context.Context) ([]entity.PriceAlert, error)
	FindByID(ctx context.Context, id uint) (*entity.PriceAlert, error)
	Update(ctx context.Context, alert *entity.PriceAlert) error
	Delete(ctx context.Context, id uint) error
}

// NewPriceAlertRepository creates a new GORM-based price alert repository.
func NewPriceAlertRepository(db *gorm.DB) PriceAlertRepository {
	return &priceAlertRepository{db: db}
}

type priceAlertRepository struct {
	db *gorm.DB
}

func (r *priceAlertRepository) Create(ctx context.Context, alert *entity.PriceAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *priceAlertRepository) FindAll(ctx context.Context) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindActive retrieves the alerts the worker still needs to evaluate.
func (r *priceAlertRepository) FindActive(ctx context.Context) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *priceAlertRepository) FindByID(ctx context.Context, id uint) (*entity.PriceAlert, error) {
	var alert entity.PriceAlert
	if err := r.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *priceAlertRepository) Update(ctx context.Context, alert *entity.PriceAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *priceAlertRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.PriceAlert{}, id).Error
}
