package status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetActiveByPlate(ctx context.Context, licensePlate string) (*domain.Session, error)
	GetActiveBySpot(ctx context.Context, spotID string) (*domain.Session, error)
}

// SpotRepository интерфейс репозитория парковочных мест
type SpotRepository interface {
	FindNear(ctx context.Context, lat, lng float64) (*domain.Spot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
