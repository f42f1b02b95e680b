package http

import (
	"net/http"
	"strconv"

	"stocksage/internal/api/service"
	"stocksage/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for stock data.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/:symbol/chart", h.GetChart)
	g.GET("/:symbol/news", h.GetNews)
}

// Search godoc
// @Summary Search for symbols
// @Description Search for stock and ETF symbols by name or ticker
// @Tags stocks
// @Produce  json
// @Param   q  query    string true    "Search query"
// @Success 200 {object} dto.SearchResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/search [get]
func (h *StockHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")

	resp, err := h.stockService.Search(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("Symbol search failed", logger.ErrorField(err), logger.StringField("query", query))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Symbol search failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetChart godoc
// @Summary Get chart data
// @Description Get the OHLCV history and per-bar indicator series for a symbol
// @Tags stocks
// @Produce  json
// @Param   symbol    path     string true    "Stock symbol"
// @Param   interval  query    string false   "Bar interval (default 1d)"
// @Param   range     query    string false   "History range (default 6mo)"
// @Success 200 {object} dto.ChartResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/chart [get]
func (h *StockHandler) GetChart(c echo.Context) error {
	symbol := c.Param("symbol")

	resp, err := h.stockService.GetChart(c.Request().Context(), symbol, c.QueryParam("interval"), c.QueryParam("range"))
	if err != nil {
		h.logger.Error("Failed to get chart data", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetNews godoc
// @Summary Get news for a symbol
// @Description Get the stored news articles tagged with the symbol
// @Tags stocks
// @Produce  json
// @Param   symbol  path     string true    "Stock symbol"
// @Param   limit   query    int    false   "Maximum number of articles (default 20)"
// @Success 200 {array} dto.NewsItemResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/news [get]
func (h *StockHandler) GetNews(c echo.Context) error {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	news, err := h.stockService.GetNews(c.Request().Context(), symbol, limit)
	if err != nil {
		h.logger.Error("Failed to get news", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get news"})
	}
	return c.JSON(http.StatusOK, news)
}
