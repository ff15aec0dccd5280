package post_plate_status

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/service/status/models"
)

type StatusService interface {
	GetPlateStatus(ctx context.Context, licensePlate string) (*models.PlateStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
