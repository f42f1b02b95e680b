package http

import (
	"errors"
	"net/http"
	"strconv"

	"stocksage/internal/api/dto"
	"stocksage/internal/api/service"
	"stocksage/internal/repository"
	"stocksage/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// WatchlistHandler handles HTTP requests for the watchlist.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.AddItem)
	g.GET("", h.GetAllItems)
	g.DELETE("/:id", h.RemoveItem)
}

// AddItem godoc
// @Summary Add a symbol to the watchlist
// @Description Add a symbol to the watchlist so the worker refreshes its analysis on a schedule
// @Tags watchlist
// @Accept  json
// @Produce  json
// @Param   item  body    dto.CreateWatchlistItemRequest   true    "Symbol to track"
// @Success 201 {object} dto.WatchlistItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) AddItem(c echo.Context) error {
	var req dto.CreateWatchlistItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	item, err := h.watchlistService.Add(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSymbolRequired):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicateWatchlistItem):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			h.logger.Error("Failed to add watchlist item", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add watchlist item"})
		}
	}

	return c.JSON(http.StatusCreated, item)
}

// GetAllItems godoc
// @Summary List the watchlist
// @Description Get every watchlist entry with its latest analysis snapshot
// @Tags watchlist
// @Produce  json
// @Success 200 {array} dto.WatchlistItemResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) GetAllItems(c echo.Context) error {
	items, err := h.watchlistService.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get watchlist"})
	}
	return c.JSON(http.StatusOK, items)
}

// RemoveItem godoc
// @Summary Remove a watchlist entry
// @Description Remove a watchlist entry by its ID
// @Tags watchlist
// @Produce  json
// @Param   id  path    int true    "Watchlist item ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /watchlist/{id} [delete]
func (h *WatchlistHandler) RemoveItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid watchlist item ID"})
	}

	if err := h.watchlistService.Remove(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Watchlist item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove watchlist item"})
	}

	return c.NoContent(http.StatusNoContent)
}
