package post_webhook

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	processEvent "github.com/m04kA/SMC-GarageService/internal/usecase/process_event"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownEventType   = "неизвестный тип события"
	msgMissingField       = "отсутствует обязательное поле события"
	msgDuplicateEntry     = "активная сессия для номера уже существует"
	msgNoActiveSession    = "нет активной сессии для номера"
	msgAlreadyParked      = "автомобиль уже припаркован"
	msgNoSpotAvailable    = "нет свободного места в пределах допуска"
	msgSectorFull         = "сектор заполнен"
	msgInvalidInput       = "некорректные данные события"
	msgInternalError      = "внутренняя ошибка обработки события"
)

type Handler struct {
	useCase ProcessEventUseCase
	logger  Logger
}

func NewHandler(useCase ProcessEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /webhook
//
// Контракт с продьюсером событий: любое событие подтверждается HTTP 200
// со структурированным флагом success. Ошибки валидации, бизнес-отказы
// и сбои хранилища не транслируются в транспортные статусы - иначе
// симулятор начнет ретраить события, которые отклонены по делу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhook - Invalid request body: %v", err)
		h.acknowledge(w, false, msgInvalidRequestBody)
		return
	}

	event, err := req.ToEvent()
	if err != nil {
		switch {
		case errors.Is(err, errUnknownEventType):
			h.logger.Warn("POST /webhook - Unknown event type: plate=%s, event_type=%s", req.LicensePlate, req.EventType)
			h.acknowledge(w, false, msgUnknownEventType)
		default:
			h.logger.Warn("POST /webhook - Missing required field: plate=%s, event_type=%s", req.LicensePlate, req.EventType)
			h.acknowledge(w, false, msgMissingField)
		}
		return
	}

	if err := h.useCase.Execute(r.Context(), event); err != nil {
		switch {
		case errors.Is(err, processEvent.ErrDuplicateEntry):
			h.logger.Warn("POST /webhook - Duplicate entry: plate=%s", req.LicensePlate)
			h.acknowledge(w, false, msgDuplicateEntry)

		case errors.Is(err, processEvent.ErrNoActiveSession):
			h.logger.Warn("POST /webhook - No active session: plate=%s, event_type=%s", req.LicensePlate, req.EventType)
			h.acknowledge(w, false, msgNoActiveSession)

		case errors.Is(err, processEvent.ErrAlreadyParked):
			h.logger.Warn("POST /webhook - Already parked: plate=%s", req.LicensePlate)
			h.acknowledge(w, false, msgAlreadyParked)

		case errors.Is(err, processEvent.ErrNoSpotAvailable):
			h.logger.Warn("POST /webhook - No spot available: plate=%s", req.LicensePlate)
			h.acknowledge(w, false, msgNoSpotAvailable)

		case errors.Is(err, processEvent.ErrSectorFull):
			h.logger.Warn("POST /webhook - Sector full: plate=%s", req.LicensePlate)
			h.acknowledge(w, false, msgSectorFull)

		case errors.Is(err, processEvent.ErrInvalidInput), errors.Is(err, processEvent.ErrUnknownEvent):
			h.logger.Warn("POST /webhook - Invalid event: plate=%s, event_type=%s, error=%v",
				req.LicensePlate, req.EventType, err)
			h.acknowledge(w, false, msgInvalidInput)

		default:
			h.logger.Error("POST /webhook - Failed to process event: plate=%s, event_type=%s, error=%v",
				req.LicensePlate, req.EventType, err)
			h.acknowledge(w, false, msgInternalError)
		}
		return
	}

	h.logger.Info("POST /webhook - Event processed: plate=%s, event_type=%s", req.LicensePlate, req.EventType)
	h.acknowledge(w, true, "")
}

func (h *Handler) acknowledge(w http.ResponseWriter, success bool, message string) {
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Success: success, Message: message})
}
