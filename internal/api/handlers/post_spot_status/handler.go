package post_spot_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	statusService "github.com/m04kA/SMC-GarageService/internal/service/status"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCoordinates = "не указаны координаты места"
	msgSpotNotFound       = "место не найдено в пределах допуска"
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

// Handle POST /api/v1/spot-status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SpotStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spot-status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Lat == nil || req.Lng == nil {
		h.logger.Warn("POST /spot-status - Missing coordinates")
		handlers.RespondBadRequest(w, msgMissingCoordinates)
		return
	}

	result, err := h.service.GetSpotStatus(r.Context(), *req.Lat, *req.Lng)
	if err != nil {
		switch {
		case errors.Is(err, statusService.ErrSpotNotFound):
			h.logger.Warn("POST /spot-status - Spot not found: lat=%f, lng=%f", *req.Lat, *req.Lng)
			handlers.RespondNotFound(w, msgSpotNotFound)

		default:
			h.logger.Error("POST /spot-status - Failed to get status: lat=%f, lng=%f, error=%v", *req.Lat, *req.Lng, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /spot-status - spot=%s, occupied=%t", result.SpotID, result.Occupied)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
