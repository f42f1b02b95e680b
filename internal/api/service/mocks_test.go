package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stocksage/internal/analyzer"
	"stocksage/internal/entity"
	"stocksage/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

// fakeWatchlistRepository is an in-memory WatchlistRepository.
type fakeWatchlistRepository struct {
	items     map[uint]*entity.WatchlistItem
	nextID    uint
	createErr error
}

func newFakeWatchlistRepository() *fakeWatchlistRepository {
	return &fakeWatchlistRepository{items: make(map[uint]*entity.WatchlistItem), nextID: 1}
}

func (f *fakeWatchlistRepository) Create(_ context.Context, item *entity.WatchlistItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return nil
}

func (f *fakeWatchlistRepository) FindAll(_ context.Context) ([]entity.WatchlistItem, error) {
	var out []entity.WatchlistItem
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeWatchlistRepository) FindByID(_ context.Context, id uint) (*entity.WatchlistItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeWatchlistRepository) Delete(_ context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

// fakeAnalysisRepository is an in-memory StockAnalysisRepository keyed by symbol.
type fakeAnalysisRepository struct {
	bySymbol map[string][]entity.StockAnalysis
}

func newFakeAnalysisRepository() *fakeAnalysisRepository {
	return &fakeAnalysisRepository{bySymbol: make(map[string][]entity.StockAnalysis)}
}

func (f *fakeAnalysisRepository) Create(_ context.Context, analysis *entity.StockAnalysis) error {
	f.bySymbol[analysis.Symbol] = append([]entity.StockAnalysis{*analysis}, f.bySymbol[analysis.Symbol]...)
	return nil
}

func (f *fakeAnalysisRepository) FindBySymbol(_ context.Context, symbol string, limit int) ([]entity.StockAnalysis, error) {
	snapshots := f.bySymbol[symbol]
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}
	return snapshots, nil
}

func (f *fakeAnalysisRepository) FindLatestPerSymbol(_ context.Context, limit int) ([]entity.StockAnalysis, error) {
	var out []entity.StockAnalysis
	for _, snapshots := range f.bySymbol {
		if len(snapshots) > 0 {
			out = append(out, snapshots[0])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeAlertRepository is an in-memory PriceAlertRepository.
type fakeAlertRepository struct {
	alerts map[uint]*entity.PriceAlert
	nextID uint
}

func newFakeAlertRepository() *fakeAlertRepository {
	return &fakeAlertRepository{alerts: make(map[uint]*entity.PriceAlert), nextID: 1}
}

func (f *fakeAlertRepository) Create(_ context.Context, alert *entity.PriceAlert) error {
	alert.ID = f.nextID
	f.nextID++
	f.alerts[alert.ID] = alert
	return nil
}

func (f *fakeAlertRepository) FindAll(_ context.Context) ([]entity.PriceAlert, error) {
	var out []entity.PriceAlert
	for _, alert := range f.alerts {
		out = append(out, *alert)
	}
	return out, nil
}

func (f *fakeAlertRepository) FindActive(_ context.Context) ([]entity.PriceAlert, error) {
	var out []entity.PriceAlert
	for _, alert := range f.alerts {
		if alert.IsActive {
			out = append(out, *alert)
		}
	}
	return out, nil
}

func (f *fakeAlertRepository) FindByID(_ context.Context, id uint) (*entity.PriceAlert, error) {
	alert, ok := f.alerts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *alert
	return &copied, nil
}

func (f *fakeAlertRepository) Update(_ context.Context, alert *entity.PriceAlert) error {
	f.alerts[alert.ID] = alert
	return nil
}

func (f *fakeAlertRepository) Delete(_ context.Context, id uint) error {
	delete(f.alerts, id)
	return nil
}

// fakePipeline is a canned analyzer.Service.
type fakePipeline struct {
	report       *analyzer.Report
	err          error
	lastSymbol   string
	lastInterval string
	lastRange    string
}

func (f *fakePipeline) Analyze(_ context.Context, symbol, interval, dataRange string) (*analyzer.Report, error) {
	f.lastSymbol = symbol
	f.lastInterval = interval
	f.lastRange = dataRange
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}
