package http

import (
	"errors"
	"net/http"
	"strconv"

	"stocksage/internal/api/dto"
	"stocksage/internal/api/service"
	"stocksage/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AlertHandler handles HTTP requests for price alerts.
type AlertHandler struct {
	alertService service.AlertService
	logger       *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alertService: alertService, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAlert)
	g.GET("", h.GetAllAlerts)
	g.PUT("/:id", h.UpdateAlert)
	g.DELETE("/:id", h.DeleteAlert)
}

// CreateAlert godoc
// @Summary Create a price alert
// @Description Create a price alert that notifies when the market price crosses the target
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   alert  body    dto.CreatePriceAlertRequest   true    "Alert to create"
// @Success 201 {object} dto.PriceAlertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /alerts [post]
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	var req dto.CreatePriceAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	alert, err := h.alertService.Create(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSymbolRequired) || errors.Is(err, service.ErrInvalidAlertCondition) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to create alert", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create alert"})
	}

	return c.JSON(http.StatusCreated, alert)
}

// GetAllAlerts godoc
// @Summary List price alerts
// @Description Get every price alert
// @Tags alerts
// @Produce  json
// @Success 200 {array} dto.PriceAlertResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) GetAllAlerts(c echo.Context) error {
	alerts, err := h.alertService.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get alerts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get alerts"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// UpdateAlert godoc
// @Summary Update a price alert
// @Description Update an alert's condition, target price or active flag
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   id     path    int true    "Alert ID"
// @Param   alert  body    dto.UpdatePriceAlertRequest   true    "Fields to update"
// @Success 200 {object} dto.PriceAlertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /alerts/{id} [put]
func (h *AlertHandler) UpdateAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid alert ID"})
	}

	var req dto.UpdatePriceAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	alert, err := h.alertService.Update(c.Request().Context(), uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Alert not found"})
		case errors.Is(err, service.ErrInvalidAlertCondition):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update alert"})
		}
	}

	return c.JSON(http.StatusOK, alert)
}

// DeleteAlert godoc
// @Summary Delete a price alert
// @Description Delete an alert by its ID
// @Tags alerts
// @Produce  json
// @Param   id  path    int true    "Alert ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /alerts/{id} [delete]
func (h *AlertHandler) DeleteAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid alert ID"})
	}

	if err := h.alertService.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Alert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete alert"})
	}

	return c.NoContent(http.StatusNoContent)
}
