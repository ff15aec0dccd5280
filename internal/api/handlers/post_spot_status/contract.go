package post_spot_status

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/service/status/models"
)

type StatusService interface {
	GetSpotStatus(ctx context.Context, lat, lng float64) (*models.SpotStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
