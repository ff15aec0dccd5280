package post_plate_status

import (
	"time"

	"github.com/m04kA/SMC-GarageService/internal/service/status/models"
)

// PlateStatusRequest HTTP модель запроса статуса по госномеру
type PlateStatusRequest struct {
	LicensePlate string `json:"license_plate"`
}

// PlateStatusResponse HTTP модель статуса активной сессии
type PlateStatusResponse struct {
	LicensePlate  string   `json:"license_plate"`
	EntryTime     string   `json:"entry_time"`
	TimeParked    string   `json:"time_parked"`
	PriceUntilNow float64  `json:"price_until_now"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(resp *models.PlateStatusResponse) *PlateStatusResponse {
	return &PlateStatusResponse{
		LicensePlate:  resp.LicensePlate,
		EntryTime:     resp.EntryTime.Format(time.RFC3339),
		TimeParked:    resp.TimeParked.Round(time.Second).String(),
		PriceUntilNow: resp.PriceUntilNow,
		Lat:           resp.Lat,
		Lng:           resp.Lng,
	}
}
