package load_garage

import "errors"

var (
	// ErrProviderUnavailable возвращается, когда провайдер топологии недоступен
	ErrProviderUnavailable = errors.New("load_garage: garage layout provider unavailable")

	// ErrInvalidLayout возвращается при некорректной топологии
	// (место ссылается на неизвестный сектор и т.п.)
	ErrInvalidLayout = errors.New("load_garage: invalid garage layout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("load_garage: internal error")
)
