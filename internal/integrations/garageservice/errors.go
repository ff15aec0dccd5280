package garageservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("garageservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("garageservice client: invalid response")

	// ErrEmptyLayout возвращается, когда провайдер вернул пустую топологию
	ErrEmptyLayout = errors.New("garageservice client: empty garage layout")
)
