package repository

import (
	"context"

	"stocksage/internal/entity"

	"gorm.io/gorm"
)

// StockAnalysisRepository defines the interface for analysis snapshot data
// operations.
type StockAnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.StockAnalysis) error
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.StockAnalysis, error)
	FindLatestPerSymbol(ctx context.Context, limit int) ([]entity.StockAnalysis, error)
}

// NewStockAnalysisRepository creates a new GORM-based analysis repository.
func NewStockAnalysisRepository(db *gorm.DB) StockAnalysisRepository {
	return &stockAnalysisRepository{db: db}
}

type stockAnalysisRepository struct {
	db *gorm.DB
}

// Create persists a new analysis snapshot.
func (r *stockAnalysisRepository) Create(ctx context.Context, analysis *entity.StockAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

// FindBySymbol retrieves the most recent analyses for a symbol.
func (r *stockAnalysisRepository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.StockAnalysis, error) {
	var analyses []entity.StockAnalysis
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

// FindLatestPerSymbol retrieves the newest analysis for each distinct symbol,
// newest symbols first. Backs the dashboard view.
func (r *stockAnalysisRepository) FindLatestPerSymbol(ctx context.Context, limit int) ([]entity.StockAnalysis, error) {
	var analyses []entity.StockAnalysis
	subquery := r.db.Model(&entity.StockAnalysis{}).
		Select("symbol, MAX(created_at) AS max_created_at").
		Group("symbol")

	err := r.db.WithContext(ctx).
		Joins("JOIN (?) latest ON latest.symbol = stock_analyses.symbol AND latest.max_created_at = stock_analyses.created_at", subquery).
		Order("stock_analyses.created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}
