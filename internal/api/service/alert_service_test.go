package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stocksage/internal/api/dto"
	"stocksage/pkg/utils"
)

func TestAlertServiceCreate(t *testing.T) {
	t.Run("creates an active alert", func(t *testing.T) {
		svc := NewAlertService(newFakeAlertRepository(), testLogger(t))

		resp, err := svc.Create(context.Background(), &dto.CreatePriceAlertRequest{
			Symbol:      "aapl",
			Condition:   "ABOVE",
			TargetPrice: 200,
		})
		require.NoError(t, err)

		assert.Equal(t, "AAPL", resp.Symbol)
		assert.Equal(t, "above", resp.Condition)
		assert.InDelta(t, 200.0, resp.TargetPrice, 1e-9)
		assert.True(t, resp.IsActive)
		assert.Nil(t, resp.TriggeredAt)
	})

	t.Run("rejects unknown condition", func(t *testing.T) {
		svc := NewAlertService(newFakeAlertRepository(), testLogger(t))

		_, err := svc.Create(context.Background(), &dto.CreatePriceAlertRequest{
			Symbol:      "AAPL",
			Condition:   "crosses",
			TargetPrice: 200,
		})
		assert.ErrorIs(t, err, ErrInvalidAlertCondition)
	})

	t.Run("rejects missing symbol", func(t *testing.T) {
		svc := NewAlertService(newFakeAlertRepository(), testLogger(t))

		_, err := svc.Create(context.Background(), &dto.CreatePriceAlertRequest{Condition: "above"})
		assert.ErrorIs(t, err, ErrSymbolRequired)
	})
}

func TestAlertServiceUpdate(t *testing.T) {
	t.Run("patches only the provided fields", func(t *testing.T) {
		svc := NewAlertService(newFakeAlertRepository(), testLogger(t))

		created, err := svc.Create(context.Background(), &dto.CreatePriceAlertRequest{
			Symbol:      "AAPL",
			Condition:   "above",
			TargetPrice: 200,
		})
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), created.ID, &dto.UpdatePriceAlertRequest{
			TargetPrice: utils.ToPointer(210.0),
		})
		require.NoError(t, err)

		assert.InDelta(t, 210.0, updated.TargetPrice, 1e-9)
		assert.Equal(t, "above", updated.Condition)
		assert.True(t, updated.IsActive)
	})

	t.Run("re-enabling clears the triggered state", func(t *testing.T) {
		alertRepo := newFakeAlertRepository()
		svc := NewAlertService(alertRepo, testLogger(t))

		created, err := svc.Create(context.Background(), &dto.CreatePriceAlertRequest{
			Symbol:      "AAPL",
			Condition:   "above",
			TargetPrice: 200,
		})
		require.NoError(t, err)

		// Simulate the worker having fired the alert.
		stored := alertRepo.alerts[created.ID]
		stored.IsActive = false
		stored.TriggeredAt = sql.NullTime{Time: time.Now(), Valid: true}

		updated, err := svc.Update(context.Background(), created.ID, &dto.UpdatePriceAlertRequest{
			IsActive: utils.ToPointer(true),
		})
		require.NoError(t, err)

		assert.True(t, updated.IsActive)
		assert.Nil(t, updated.TriggeredAt)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		svc := NewAlertService(newFakeAlertRepository(), testLogger(t))

		_, err := svc.Update(context.Background(), 42, &dto.UpdatePriceAlertRequest{})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("invalid condition in patch is rejected", func(t *testing.T) {
		svc := NewAlertService(newFakeAlertRepository(), testLogger(t))

		created, err := svc.Create(context.Background(), &dto.CreatePriceAlertRequest{
			Symbol:      "AAPL",
			Condition:   "above",
			TargetPrice: 200,
		})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), created.ID, &dto.UpdatePriceAlertRequest{
			Condition: utils.ToPointer("sideways"),
		})
		assert.ErrorIs(t, err, ErrInvalidAlertCondition)
	})
}

func TestAlertServiceDelete(t *testing.T) {
	svc := NewAlertService(newFakeAlertRepository(), testLogger(t))

	created, err := svc.Create(context.Background(), &dto.CreatePriceAlertRequest{
		Symbol:      "AAPL",
		Condition:   "below",
		TargetPrice: 150,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), gorm.ErrRecordNotFound)
}
