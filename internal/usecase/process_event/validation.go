package process_event

import (
	"fmt"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// validateEntry валидирует событие въезда
func validateEntry(event domain.EntryEvent) error {
	if event.LicensePlate == "" {
		return fmt.Errorf("%w: license plate is required", ErrInvalidInput)
	}
	if event.EntryTime.IsZero() {
		return fmt.Errorf("%w: entry time is required", ErrInvalidInput)
	}
	return nil
}

// validateParked валидирует событие парковки
// Координаты проверяются на присутствие транспортным слоем (отсутствующие поля
// не доходят до типизированного события), здесь - только инварианты номера
func validateParked(event domain.ParkedEvent) error {
	if event.LicensePlate == "" {
		return fmt.Errorf("%w: license plate is required", ErrInvalidInput)
	}
	return nil
}

// validateExit валидирует событие выезда
func validateExit(event domain.ExitEvent) error {
	if event.LicensePlate == "" {
		return fmt.Errorf("%w: license plate is required", ErrInvalidInput)
	}
	if event.ExitTime.IsZero() {
		return fmt.Errorf("%w: exit time is required", ErrInvalidInput)
	}
	return nil
}
