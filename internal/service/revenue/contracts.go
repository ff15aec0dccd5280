package revenue

import (
	"context"
	"time"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	SumFinalPriceBySectorAndPeriod(ctx context.Context, sectorName string, from, to time.Time) (float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
