package get_revenue

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	"github.com/m04kA/SMC-GarageService/internal/domain"
	revenueService "github.com/m04kA/SMC-GarageService/internal/service/revenue"
	"github.com/m04kA/SMC-GarageService/internal/service/revenue/models"
)

const (
	msgMissingSector = "не указан сектор"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service RevenueService
	logger  Logger
}

func NewHandler(service RevenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/revenue?sector=A&date=2025-01-01
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")
	if sector == "" {
		h.logger.Warn("GET /revenue - Missing sector parameter")
		handlers.RespondBadRequest(w, msgMissingSector)
		return
	}

	dateStr := r.URL.Query().Get("date")
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.UTC)
	if err != nil {
		h.logger.Warn("GET /revenue - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetRevenue(r.Context(), &models.GetRevenueRequest{
		Sector: sector,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, revenueService.ErrInvalidInput):
			h.logger.Warn("GET /revenue - Invalid input: sector=%s, date=%s", sector, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			// Инфраструктурная ошибка не маскируется нулевой выручкой
			h.logger.Error("GET /revenue - Failed to get revenue: sector=%s, date=%s, error=%v", sector, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /revenue - sector=%s, date=%s, amount=%.2f", sector, dateStr, result.Amount)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
