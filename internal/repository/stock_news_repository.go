package repository

import (
	"context"

	"stocksage/internal/entity"

	"gorm.io/gorm"
)

// StockNewsRepository defines the interface for stock news data operations.
type StockNewsRepository interface {
	Create(ctx context.Context, news *entity.StockNews) error
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.StockNews, error)
	ExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error)
}

// NewStockNewsRepository creates a new GORM-based stock news repository.
func NewStockNewsRepository(db *gorm.DB) StockNewsRepository {
	return &stockNewsRepository{db: db}
}

type stockNewsRepository struct {
	db *gorm.DB
}

func (r *stockNewsRepository) Create(ctx context.Context, news *entity.StockNews) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// FindBySymbol retrieves the newest articles tagged with a symbol.
func (r *stockNewsRepository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.StockNews, error) {
	var news []entity.StockNews
	err := r.db.WithContext(ctx).
		Where("? = ANY(symbols)", symbol).
		Order("published_at DESC").
		Limit(limit).
		Find(&news).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}

// ExistingHashes reports which of the given hash identifiers are already
// stored, so the news refresher can skip articles it has seen.
func (r *stockNewsRepository) ExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(hashes) == 0 {
		return existing, nil
	}

	var rows []entity.StockNews
	err := r.db.WithContext(ctx).
		Select("id", "hash_identifier").
		Where("hash_identifier IN ?", hashes).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		existing[row.HashIdentifier] = true
	}
	return existing, nil
}
