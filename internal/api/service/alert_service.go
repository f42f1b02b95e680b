package service

import (
	"context"
	"errors"
	"strings"

	"stocksage/internal/api/dto"
	"stocksage/internal/entity"
	"stocksage/internal/repository"
	"stocksage/pkg/logger"
)

// ErrInvalidAlertCondition is returned when the condition is not "above" or "below".
var ErrInvalidAlertCondition = errors.New("condition must be \"above\" or \"below\"")

// AlertService manages price alerts.
type AlertService interface {
	Create(ctx context.Context, req *dto.CreatePriceAlertRequest) (*dto.PriceAlertResponse, error)
	GetAll(ctx context.Context) ([]*dto.PriceAlertResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePriceAlertRequest) (*dto.PriceAlertResponse, error)
	Delete(ctx context.Context, id uint) error
}

// NewAlertService creates a new alert service.
func NewAlertService(alertRepo repository.PriceAlertRepository, logger *logger.Logger) AlertService {
	return &alertService{
		alertRepo: alertRepo,
		logger:    logger,
	}
}

type alertService struct {
	alertRepo repository.PriceAlertRepository
	logger    *logger.Logger
}

// Create registers a new price alert.
func (s *alertService) Create(ctx context.Context, req *dto.CreatePriceAlertRequest) (*dto.PriceAlertResponse, error) {
	if req.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	condition := strings.ToLower(req.Condition)
	if condition != entity.AlertConditionAbove && condition != entity.AlertConditionBelow {
		return nil, ErrInvalidAlertCondition
	}

	alert := &entity.PriceAlert{
		Symbol:      strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Condition:   condition,
		TargetPrice: req.TargetPrice,
		IsActive:    true,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.logger.Info("Price alert created",
		logger.StringField("symbol", alert.Symbol),
		logger.StringField("condition", alert.Condition),
		logger.Float64Field("target_price", alert.TargetPrice))
	return mapToAlertResponse(alert), nil
}

// GetAll returns every alert.
func (s *alertService) GetAll(ctx context.Context) ([]*dto.PriceAlertResponse, error) {
	alerts, err := s.alertRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PriceAlertResponse, 0, len(alerts))
	for i := range alerts {
		responses = append(responses, mapToAlertResponse(&alerts[i]))
	}
	return responses, nil
}

// Update changes an alert's condition, target price or active flag. Re-enabling
// an alert clears its triggered state.
func (s *alertService) Update(ctx context.Context, id uint, req *dto.UpdatePriceAlertRequest) (*dto.PriceAlertResponse, error) {
	alert, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Condition != nil {
		condition := strings.ToLower(*req.Condition)
		if condition != entity.AlertConditionAbove && condition != entity.AlertConditionBelow {
			return nil, ErrInvalidAlertCondition
		}
		alert.Condition = condition
	}
	if req.TargetPrice != nil {
		alert.TargetPrice = *req.TargetPrice
	}
	if req.IsActive != nil {
		alert.IsActive = *req.IsActive
		if alert.IsActive {
			alert.TriggeredAt.Valid = false
		}
	}

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		s.logger.Error("Failed to update alert", logger.ErrorField(err), logger.Field("id", id))
		return nil, err
	}
	return mapToAlertResponse(alert), nil
}

// Delete removes an alert by ID.
func (s *alertService) Delete(ctx context.Context, id uint) error {
	if _, err := s.alertRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.alertRepo.Delete(ctx, id)
}

func mapToAlertResponse(alert *entity.PriceAlert) *dto.PriceAlertResponse {
	resp := &dto.PriceAlertResponse{
		ID:                alert.ID,
		Symbol:            alert.Symbol,
		Condition:         alert.Condition,
		TargetPrice:       alert.TargetPrice,
		IsActive:          alert.IsActive,
		LastNotifiedPrice: alert.LastNotifiedPrice,
		CreatedAt:         alert.CreatedAt,
	}
	if alert.TriggeredAt.Valid {
		t := alert.TriggeredAt.Time
		resp.TriggeredAt = &t
	}
	if alert.LastNotifiedAt.Valid {
		t := alert.LastNotifiedAt.Time
		resp.LastNotifiedAt = &t
	}
	return resp
}
