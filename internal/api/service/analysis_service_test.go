package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"stocksage/internal/analysis"
	"stocksage/internal/analyzer"
	"stocksage/internal/api/dto"
	"stocksage/internal/entity"
)

func TestAnalysisServiceAnalyze(t *testing.T) {
	t.Run("applies default interval and range", func(t *testing.T) {
		pipeline := &fakePipeline{report: &analyzer.Report{Symbol: "AAPL", Signal: analysis.SignalResult{Signal: "BUY"}}}
		svc := NewAnalysisService(pipeline, newFakeAnalysisRepository(), testLogger(t))

		report, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Symbol: "AAPL"})
		require.NoError(t, err)

		assert.Equal(t, "BUY", report.Signal.Signal)
		assert.Equal(t, "1d", pipeline.lastInterval)
		assert.Equal(t, "6mo", pipeline.lastRange)
	})

	t.Run("passes explicit interval and range through", func(t *testing.T) {
		pipeline := &fakePipeline{report: &analyzer.Report{Symbol: "AAPL"}}
		svc := NewAnalysisService(pipeline, newFakeAnalysisRepository(), testLogger(t))

		_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
			Symbol:   "AAPL",
			Interval: "1h",
			Range:    "1mo",
		})
		require.NoError(t, err)

		assert.Equal(t, "1h", pipeline.lastInterval)
		assert.Equal(t, "1mo", pipeline.lastRange)
	})

	t.Run("empty symbol is rejected before the pipeline runs", func(t *testing.T) {
		pipeline := &fakePipeline{}
		svc := NewAnalysisService(pipeline, newFakeAnalysisRepository(), testLogger(t))

		_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{})
		assert.ErrorIs(t, err, ErrSymbolRequired)
		assert.Empty(t, pipeline.lastSymbol)
	})

	t.Run("pipeline errors propagate", func(t *testing.T) {
		wantErr := errors.New("upstream unavailable")
		svc := NewAnalysisService(&fakePipeline{err: wantErr}, newFakeAnalysisRepository(), testLogger(t))

		_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Symbol: "AAPL"})
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestAnalysisServiceGetHistory(t *testing.T) {
	analysisRepo := newFakeAnalysisRepository()
	svc := NewAnalysisService(&fakePipeline{}, analysisRepo, testLogger(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, analysisRepo.Create(context.Background(), &entity.StockAnalysis{
			Symbol: "AAPL",
			Signal: "HOLD",
			Data:   datatypes.JSON(`{"signal":"HODL"}`),
		}))
	}

	t.Run("includes the full report payload", func(t *testing.T) {
		history, err := svc.GetHistory(context.Background(), "AAPL", 2)
		require.NoError(t, err)

		require.Len(t, history, 2)
		assert.JSONEq(t, `{"signal":"HODL"}`, string(history[0].Report))
	})

	t.Run("non-positive limit falls back to the default", func(t *testing.T) {
		history, err := svc.GetHistory(context.Background(), "AAPL", 0)
		require.NoError(t, err)
		assert.Len(t, history, 3)
	})
}

func TestAnalysisServiceGetLatest(t *testing.T) {
	analysisRepo := newFakeAnalysisRepository()
	svc := NewAnalysisService(&fakePipeline{}, analysisRepo, testLogger(t))

	require.NoError(t, analysisRepo.Create(context.Background(), &entity.StockAnalysis{Symbol: "AAPL", Signal: "BUY", Data: datatypes.JSON(`{}`)}))
	require.NoError(t, analysisRepo.Create(context.Background(), &entity.StockAnalysis{Symbol: "MSFT", Signal: "HOLD", Data: datatypes.JSON(`{}`)}))

	latest, err := svc.GetLatest(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, latest, 2)
	// Summaries omit the heavy report document.
	assert.Nil(t, latest[0].Report)

	capped, err := svc.GetLatest(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, capped, 1)
}
