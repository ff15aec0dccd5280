package post_webhook

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

type ProcessEventUseCase interface {
	Execute(ctx context.Context, event domain.Event) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
