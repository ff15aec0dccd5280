package process_event

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных события
	ErrInvalidInput = errors.New("process_event: invalid input data")

	// ErrUnknownEvent возвращается для события неизвестного типа
	ErrUnknownEvent = errors.New("process_event: unknown event type")

	// ErrDuplicateEntry возвращается на повторный ENTRY при уже активной сессии
	// Повторный въезд отклоняется, а не сливается с существующей сессией
	ErrDuplicateEntry = errors.New("process_event: active session already exists for plate")

	// ErrNoActiveSession возвращается на PARKED/EXIT без предшествующего ENTRY
	ErrNoActiveSession = errors.New("process_event: no active session for plate")

	// ErrAlreadyParked возвращается на повторный PARKED для уже припаркованной сессии
	// Зафиксированная ставка не пересчитывается
	ErrAlreadyParked = errors.New("process_event: session already has an assigned spot")

	// ErrNoSpotAvailable возвращается, когда в пределах GPS допуска нет свободного места
	ErrNoSpotAvailable = errors.New("process_event: no available spot within GPS tolerance")

	// ErrSectorFull возвращается, когда сектор найденного места заполнен до max_capacity
	ErrSectorFull = errors.New("process_event: sector is at full capacity")

	// ErrInternal возвращается при внутренних ошибках (хранилище недоступно и т.п.)
	ErrInternal = errors.New("process_event: internal error")
)
