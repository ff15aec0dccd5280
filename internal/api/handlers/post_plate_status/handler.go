package post_plate_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	statusService "github.com/m04kA/SMC-GarageService/internal/service/status"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPlate       = "не указан госномер"
	msgNoActiveSession    = "нет активной сессии для номера"
)

type Handler struct {
	service StatusService
	logger  Logger
}

func NewHandler(service StatusService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/plate-status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PlateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /plate-status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.GetPlateStatus(r.Context(), req.LicensePlate)
	if err != nil {
		switch {
		case errors.Is(err, statusService.ErrInvalidInput):
			h.logger.Warn("POST /plate-status - Missing plate")
			handlers.RespondBadRequest(w, msgMissingPlate)

		case errors.Is(err, statusService.ErrNoActiveSession):
			h.logger.Warn("POST /plate-status - No active session: plate=%s", req.LicensePlate)
			handlers.RespondNotFound(w, msgNoActiveSession)

		default:
			h.logger.Error("POST /plate-status - Failed to get status: plate=%s, error=%v", req.LicensePlate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /plate-status - plate=%s, price_until_now=%.2f", req.LicensePlate, result.PriceUntilNow)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
