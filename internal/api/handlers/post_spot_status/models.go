package post_spot_status

import (
	"time"

	"github.com/m04kA/SMC-GarageService/internal/service/status/models"
)

// SpotStatusRequest HTTP модель запроса статуса места по координатам
// Координаты в указателях, чтобы отличать отсутствующее значение от нулевого
type SpotStatusRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// SpotStatusResponse HTTP модель статуса места
type SpotStatusResponse struct {
	SpotID        string   `json:"spot_id"`
	Occupied      bool     `json:"occupied"`
	LicensePlate  *string  `json:"license_plate,omitempty"`
	EntryTime     *string  `json:"entry_time,omitempty"`
	TimeParked    *string  `json:"time_parked,omitempty"`
	PriceUntilNow *float64 `json:"price_until_now,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(resp *models.SpotStatusResponse) *SpotStatusResponse {
	out := &SpotStatusResponse{
		SpotID:        resp.SpotID,
		Occupied:      resp.Occupied,
		LicensePlate:  resp.LicensePlate,
		PriceUntilNow: resp.PriceUntilNow,
	}

	if resp.EntryTime != nil {
		entry := resp.EntryTime.Format(time.RFC3339)
		out.EntryTime = &entry
	}
	if resp.TimeParked != nil {
		parked := resp.TimeParked.Round(time.Second).String()
		out.TimeParked = &parked
	}

	return out
}
