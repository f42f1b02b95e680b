package http

import (
	"errors"
	"net/http"
	"strconv"

	"stocksage/internal/api/dto"
	"stocksage/internal/api/service"
	"stocksage/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler handles HTTP requests for analyses.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	logger          *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Analyze)
	g.GET("", h.GetLatest)
	g.GET("/:symbol", h.GetHistory)
}

// Analyze godoc
// @Summary Run an analysis
// @Description Fetch market data for a symbol, compute the technical, trend and fundamental analyses and persist the result
// @Tags analyses
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeRequest   true    "Symbol to analyze"
// @Success 200 {object} analyzer.Report
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /analyses [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	report, err := h.analysisService.Analyze(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSymbolRequired) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		// Upstream fetch failures surface as 502, everything else is a 500.
		h.logger.Error("Failed to analyze symbol", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, report)
}

// GetLatest godoc
// @Summary List latest analyses
// @Description Get the most recent analysis snapshot for every analyzed symbol
// @Tags analyses
// @Produce  json
// @Param   limit   query   int    false   "Maximum number of symbols (default 10)"
// @Success 200 {array} dto.AnalysisSummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyses [get]
func (h *AnalysisHandler) GetLatest(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	analyses, err := h.analysisService.GetLatest(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get latest analyses", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get analyses"})
	}
	return c.JSON(http.StatusOK, analyses)
}

// GetHistory godoc
// @Summary Get analysis history for a symbol
// @Description Get the persisted analysis snapshots for one symbol, newest first
// @Tags analyses
// @Produce  json
// @Param   symbol  path    string true    "Stock symbol"
// @Param   limit   query   int    false   "Maximum number of snapshots (default 30)"
// @Success 200 {array} dto.AnalysisSummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyses/{symbol} [get]
func (h *AnalysisHandler) GetHistory(c echo.Context) error {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	analyses, err := h.analysisService.GetHistory(c.Request().Context(), symbol, limit)
	if err != nil {
		h.logger.Error("Failed to get analysis history", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get analysis history"})
	}
	return c.JSON(http.StatusOK, analyses)
}
