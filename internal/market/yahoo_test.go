package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksage/pkg/config"
	"stocksage/pkg/logger"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) YahooFinanceRepository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	repo, err := NewYahooFinanceRepository(config.YahooFinance{
		BaseURL:             server.URL,
		MaxRequestPerMinute: 6000,
		CacheTTL:            "1m",
	}, log)
	require.NoError(t, err)
	return repo
}

func TestGet(t *testing.T) {
	t.Run("parses chart and drops bars with missing close", func(t *testing.T) {
		var requests int
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
			assert.Equal(t, "1d", r.URL.Query().Get("interval"))
			assert.Equal(t, "6mo", r.URL.Query().Get("range"))
			w.Write([]byte(`{
				"chart": {
					"result": [{
						"meta": {"symbol": "AAPL", "exchangeName": "NMS", "currency": "USD", "regularMarketPrice": 191.5},
						"timestamp": [1700000000, 1700086400, 1700172800],
						"indicators": {"quote": [{
							"open":   [189.0, 190.0, 191.0],
							"high":   [190.5, 191.5, 192.5],
							"low":    [188.5, 189.5, 190.5],
							"close":  [190.0, null, 191.5],
							"volume": [52000000, 48000000, 50000000]
						}]}
					}],
					"error": null
				}
			}`))
		})

		data, err := repo.Get(context.Background(), GetStockDataParam{Symbol: "AAPL"})
		require.NoError(t, err)

		assert.Equal(t, "AAPL", data.Symbol)
		assert.Equal(t, "NMS", data.Exchange)
		assert.Equal(t, "USD", data.Currency)
		assert.InDelta(t, 191.5, data.MarketPrice, 1e-9)

		// The null-close bar is dropped.
		require.Len(t, data.OHLCV, 2)
		assert.Equal(t, int64(1700000000), data.OHLCV[0].Timestamp)
		assert.InDelta(t, 190.0, data.OHLCV[0].Close, 1e-9)
		assert.Equal(t, int64(52000000), data.OHLCV[0].Volume)
		assert.InDelta(t, 191.5, data.OHLCV[1].Close, 1e-9)

		// Second call is served from the cache.
		_, err = repo.Get(context.Background(), GetStockDataParam{Symbol: "AAPL"})
		require.NoError(t, err)
		assert.Equal(t, 1, requests)
	})

	t.Run("surfaces the API error description", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`))
		})

		_, err := repo.Get(context.Background(), GetStockDataParam{Symbol: "NOPE"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symbol may be delisted")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := repo.Get(context.Background(), GetStockDataParam{Symbol: "AAPL"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestGetStockInfo(t *testing.T) {
	t.Run("maps quoteSummary fields and leaves missing ratios nil", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v10/finance/quoteSummary/MSFT", r.URL.Path)
			assert.Contains(t, r.URL.Query().Get("modules"), "financialData")
			w.Write([]byte(`{
				"quoteSummary": {
					"result": [{
						"price": {"longName": "Microsoft Corporation", "exchangeName": "NasdaqGS", "marketCap": {"raw": 3100000000000}},
						"summaryProfile": {"sector": "Technology"},
						"summaryDetail": {
							"trailingPE": {"raw": 36.2},
							"priceToSalesTrailing12Months": {"raw": 12.9},
							"dividendYield": {"raw": 0.0072}
						},
						"defaultKeyStatistics": {"priceToBook": {"raw": 12.4}},
						"financialData": {
							"returnOnEquity": {"raw": 0.38},
							"debtToEquity": {"raw": 44.2},
							"currentRatio": {"raw": 1.77},
							"profitMargins": {"raw": 0.36},
							"revenueGrowth": {"raw": 0.17}
						}
					}],
					"error": null
				}
			}`))
		})

		info, err := repo.GetStockInfo(context.Background(), "MSFT")
		require.NoError(t, err)

		assert.Equal(t, "MSFT", info.Symbol)
		assert.Equal(t, "Microsoft Corporation", info.Name)
		assert.Equal(t, "Technology", info.Sector)
		assert.Equal(t, int64(3100000000000), info.MarketCap)

		require.NotNil(t, info.PERatio)
		assert.InDelta(t, 36.2, *info.PERatio, 1e-9)
		require.NotNil(t, info.ROE)
		assert.InDelta(t, 0.38, *info.ROE, 1e-9)
		require.NotNil(t, info.DebtToEquity)
		assert.InDelta(t, 44.2, *info.DebtToEquity, 1e-9)

		// Not present in the payload.
		assert.Nil(t, info.EPS)
		assert.Nil(t, info.Week52High)
	})

	t.Run("falls back to short name", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteSummary": {"result": [{"price": {"shortName": "Tesla", "exchangeName": "NasdaqGS"}}], "error": null}}`))
		})

		info, err := repo.GetStockInfo(context.Background(), "TSLA")
		require.NoError(t, err)
		assert.Equal(t, "Tesla", info.Name)
	})

	t.Run("empty result is an error", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteSummary": {"result": [], "error": null}}`))
		})

		_, err := repo.GetStockInfo(context.Background(), "NOPE")
		require.Error(t, err)
	})
}

func TestSearch(t *testing.T) {
	t.Run("keeps only equities and ETFs", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/finance/search", r.URL.Path)
			assert.Equal(t, "apple", r.URL.Query().Get("q"))
			w.Write([]byte(`{
				"quotes": [
					{"symbol": "AAPL", "longname": "Apple Inc.", "exchDisp": "NASDAQ", "quoteType": "EQUITY"},
					{"symbol": "APLE", "shortname": "Apple Hospitality REIT", "exchDisp": "NYSE", "quoteType": "EQUITY"},
					{"symbol": "AAPL240621C00190000", "exchDisp": "OPR", "quoteType": "OPTION"},
					{"symbol": "QQQ", "longname": "Invesco QQQ Trust", "exchDisp": "NASDAQ", "quoteType": "ETF"}
				]
			}`))
		})

		results, err := repo.Search(context.Background(), "apple")
		require.NoError(t, err)

		require.Len(t, results, 3)
		assert.Equal(t, "AAPL", results[0].Symbol)
		assert.Equal(t, "Apple Inc.", results[0].Name)
		assert.Equal(t, "Apple Hospitality REIT", results[1].Name)
		assert.Equal(t, "ETF", results[2].Type)
	})

	t.Run("no matching quotes returns empty", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quotes": []}`))
		})

		results, err := repo.Search(context.Background(), "zzzz")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
