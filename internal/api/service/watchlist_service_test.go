package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stocksage/internal/api/dto"
	"stocksage/internal/entity"
)

func TestWatchlistServiceAdd(t *testing.T) {
	t.Run("normalizes symbol and exchange", func(t *testing.T) {
		watchlistRepo := newFakeWatchlistRepository()
		svc := NewWatchlistService(watchlistRepo, newFakeAnalysisRepository(), testLogger(t))

		resp, err := svc.Add(context.Background(), &dto.CreateWatchlistItemRequest{
			Symbol:   " reliance.ns ",
			Exchange: "nse",
		})
		require.NoError(t, err)

		assert.Equal(t, "RELIANCE.NS", resp.Symbol)
		assert.Equal(t, "NSE", resp.Exchange)
		assert.NotZero(t, resp.ID)
	})

	t.Run("empty symbol is rejected", func(t *testing.T) {
		svc := NewWatchlistService(newFakeWatchlistRepository(), newFakeAnalysisRepository(), testLogger(t))

		_, err := svc.Add(context.Background(), &dto.CreateWatchlistItemRequest{})
		assert.ErrorIs(t, err, ErrSymbolRequired)
	})
}

func TestWatchlistServiceGetAll(t *testing.T) {
	t.Run("joins the latest analysis when one exists", func(t *testing.T) {
		watchlistRepo := newFakeWatchlistRepository()
		analysisRepo := newFakeAnalysisRepository()
		svc := NewWatchlistService(watchlistRepo, analysisRepo, testLogger(t))

		_, err := svc.Add(context.Background(), &dto.CreateWatchlistItemRequest{Symbol: "AAPL"})
		require.NoError(t, err)

		require.NoError(t, analysisRepo.Create(context.Background(), &entity.StockAnalysis{
			Symbol:     "AAPL",
			Price:      191.5,
			Signal:     "BUY",
			Confidence: 72,
		}))

		items, err := svc.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)

		require.NotNil(t, items[0].LastPrice)
		assert.InDelta(t, 191.5, *items[0].LastPrice, 1e-9)
		require.NotNil(t, items[0].LastSignal)
		assert.Equal(t, "BUY", *items[0].LastSignal)
	})

	t.Run("unanalyzed symbol has nil last fields", func(t *testing.T) {
		svc := NewWatchlistService(newFakeWatchlistRepository(), newFakeAnalysisRepository(), testLogger(t))

		_, err := svc.Add(context.Background(), &dto.CreateWatchlistItemRequest{Symbol: "FRESH"})
		require.NoError(t, err)

		items, err := svc.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].LastPrice)
		assert.Nil(t, items[0].LastSignal)
	})
}

func TestWatchlistServiceRemove(t *testing.T) {
	watchlistRepo := newFakeWatchlistRepository()
	svc := NewWatchlistService(watchlistRepo, newFakeAnalysisRepository(), testLogger(t))

	resp, err := svc.Add(context.Background(), &dto.CreateWatchlistItemRequest{Symbol: "AAPL"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), resp.ID))

	items, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.Remove(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
