package process_event

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	GetActiveByPlate(ctx context.Context, licensePlate string) (*domain.Session, error)
	AssignSpot(ctx context.Context, id int64, sectorName, spotID string, lat, lng, appliedBasePrice float64) error
	Close(ctx context.Context, id int64, exitTime time.Time, finalPrice float64) error
}

// SpotRepository интерфейс репозитория парковочных мест
type SpotRepository interface {
	FindAvailableNear(ctx context.Context, lat, lng float64) (*domain.Spot, error)
	CountOccupiedBySector(ctx context.Context, sectorName string) (int, error)
	SetOccupied(ctx context.Context, id string, occupied bool) error
}

// SectorRepository интерфейс репозитория секторов
type SectorRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Sector, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
