package get_revenue

import (
	"github.com/m04kA/SMC-GarageService/internal/domain"
	"github.com/m04kA/SMC-GarageService/internal/service/revenue/models"
)

// RevenueResponse HTTP модель выручки сектора за день
type RevenueResponse struct {
	Sector string  `json:"sector"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(resp *models.RevenueResponse) *RevenueResponse {
	return &RevenueResponse{
		Sector: resp.Sector,
		Date:   resp.Date.Format(domain.DateFormat),
		Amount: resp.Amount,
	}
}
