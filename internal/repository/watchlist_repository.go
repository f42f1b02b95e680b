package repository

import (
	"context"
	"errors"

	"stocksage/internal/entity"

	"gorm.io/gorm"
)

// ErrDuplicateWatchlistItem is returned when a symbol+exchange pair is
// already on the watchlist.
var ErrDuplicateWatchlistItem = errors.New("symbol is already on the watchlist")

// WatchlistRepository defines the interface for watchlist data operations.
type WatchlistRepository interface {
	Create(ctx context.Context, item *entity.WatchlistItem) error
	FindAll(ctx context.Context) ([]entity.WatchlistItem, error)
	FindByID(ctx context.Context, id uint) (*entity.WatchlistItem, error)
	Delete(ctx context.Context, id uint) error
}

// NewWatchlistRepository creates a new GORM-based watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

// Create adds a symbol to the watchlist, rejecting duplicates.
func (r *watchlistRepository) Create(ctx context.Context, item *entity.WatchlistItem) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.WatchlistItem{}).
		Where("symbol = ? AND exchange = ?", item.Symbol, item.Exchange).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateWatchlistItem
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// FindAll retrieves all watchlist items.
func (r *watchlistRepository) FindAll(ctx context.Context) ([]entity.WatchlistItem, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves a watchlist item by its ID.
func (r *watchlistRepository) FindByID(ctx context.Context, id uint) (*entity.WatchlistItem, error) {
	var item entity.WatchlistItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a watchlist item.
func (r *watchlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.WatchlistItem{}, id).Error
}
