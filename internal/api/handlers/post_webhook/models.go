package post_webhook

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

var (
	// errUnknownEventType возвращается для нераспознанного тега события
	errUnknownEventType = errors.New("post_webhook: unknown event type")

	// errMissingField возвращается, когда в событии нет обязательного для его типа поля
	errMissingField = errors.New("post_webhook: missing required field")
)

// WebhookRequest HTTP модель события симулятора
// Опциональные поля декодируются в указатели, чтобы отличать
// отсутствующее значение от нулевого
type WebhookRequest struct {
	LicensePlate string     `json:"license_plate"`
	EventType    string     `json:"event_type"`
	EntryTime    *time.Time `json:"entry_time,omitempty"`
	ExitTime     *time.Time `json:"exit_time,omitempty"`
	Lat          *float64   `json:"lat,omitempty"`
	Lng          *float64   `json:"lng,omitempty"`
}

// WebhookResponse HTTP модель подтверждения приема события
type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ToEvent конвертирует HTTP модель в типизированное доменное событие
// Тег события сравнивается без учета регистра; каждый вариант забирает
// только свои поля, поэтому лишние опциональные поля просто игнорируются
func (r *WebhookRequest) ToEvent() (domain.Event, error) {
	switch strings.ToUpper(r.EventType) {
	case string(domain.EventEntry):
		if r.EntryTime == nil {
			return nil, errMissingField
		}
		return domain.EntryEvent{
			LicensePlate: r.LicensePlate,
			EntryTime:    *r.EntryTime,
		}, nil

	case string(domain.EventParked):
		if r.Lat == nil || r.Lng == nil {
			return nil, errMissingField
		}
		return domain.ParkedEvent{
			LicensePlate: r.LicensePlate,
			Lat:          *r.Lat,
			Lng:          *r.Lng,
		}, nil

	case string(domain.EventExit):
		if r.ExitTime == nil {
			return nil, errMissingField
		}
		return domain.ExitEvent{
			LicensePlate: r.LicensePlate,
			ExitTime:     *r.ExitTime,
		}, nil

	default:
		return nil, errUnknownEventType
	}
}
