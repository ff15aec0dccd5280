package load_garage

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	"github.com/m04kA/SMC-GarageService/internal/integrations/garageservice"
)

// GarageServiceClient интерфейс клиента провайдера топологии гаража
type GarageServiceClient interface {
	GetGarage(ctx context.Context) (*garageservice.GarageLayout, error)
}

// SectorRepository интерфейс репозитория секторов
type SectorRepository interface {
	Upsert(ctx context.Context, sector *domain.Sector) error
}

// SpotRepository интерфейс репозитория парковочных мест
type SpotRepository interface {
	Upsert(ctx context.Context, spot *domain.Spot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
