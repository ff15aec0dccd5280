package get_revenue

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/service/revenue/models"
)

type RevenueService interface {
	GetRevenue(ctx context.Context, req *models.GetRevenueRequest) (*models.RevenueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
