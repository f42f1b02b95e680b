package analyzer

import (
	"context"
	"errors"
	"testing"

	"stocksage/internal/market"
	"stocksage/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeYahooFinance struct {
	data     map[string]*market.StockData
	getCalls []string
}

func (f *fakeYahooFinance) Get(_ context.Context, param market.GetStockDataParam) (*market.StockData, error) {
	f.getCalls = append(f.getCalls, param.Symbol)
	if data, ok := f.data[param.Symbol]; ok {
		return data, nil
	}
	return nil, errors.New("no chart data")
}

func (f *fakeYahooFinance) GetStockInfo(_ context.Context, _ string) (*market.StockInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeYahooFinance) Search(_ context.Context, _ string) ([]market.SearchResult, error) {
	return nil, errors.New("not implemented")
}

func TestResolveSymbol(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	t.Run("symbol with data resolves as given", func(t *testing.T) {
		yahoo := &fakeYahooFinance{data: map[string]*market.StockData{
			"AAPL": {Symbol: "AAPL", Exchange: "NMS"},
		}}
		svc := &service{yahooFinance: yahoo, log: log}

		resolved, data, err := svc.resolveSymbol(context.Background(), "AAPL", "1d", "6mo")

		require.NoError(t, err)
		assert.Equal(t, "AAPL", resolved)
		assert.Equal(t, "NMS", data.Exchange)
		assert.Equal(t, []string{"AAPL"}, yahoo.getCalls)
	})

	t.Run("bare symbol falls back to exchange suffixes", func(t *testing.T) {
		yahoo := &fakeYahooFinance{data: map[string]*market.StockData{
			"RELIANCE.NS": {Symbol: "RELIANCE.NS", Exchange: "NSI"},
		}}
		svc := &service{yahooFinance: yahoo, log: log}

		resolved, data, err := svc.resolveSymbol(context.Background(), "RELIANCE", "1d", "6mo")

		require.NoError(t, err)
		assert.Equal(t, "RELIANCE.NS", resolved)
		assert.Equal(t, "NSI", data.Exchange)
		assert.Equal(t, []string{"RELIANCE", "RELIANCE.NS"}, yahoo.getCalls)
	})

	t.Run("symbol that already carries a suffix is not retried", func(t *testing.T) {
		yahoo := &fakeYahooFinance{}
		svc := &service{yahooFinance: yahoo, log: log}

		_, _, err := svc.resolveSymbol(context.Background(), "BOGUS.NS", "1d", "6mo")

		require.Error(t, err)
		assert.Equal(t, []string{"BOGUS.NS"}, yahoo.getCalls)
	})

	t.Run("bare symbol with no data on any exchange fails", func(t *testing.T) {
		yahoo := &fakeYahooFinance{}
		svc := &service{yahooFinance: yahoo, log: log}

		_, _, err := svc.resolveSymbol(context.Background(), "BOGUS", "1d", "6mo")

		require.Error(t, err)
		assert.Equal(t, []string{"BOGUS", "BOGUS.NS", "BOGUS.BO"}, yahoo.getCalls)
	})
}
