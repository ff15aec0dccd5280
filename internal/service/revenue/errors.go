package revenue

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("revenue.service: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	// Инфраструктурная ошибка не маскируется нулевой выручкой
	ErrInternal = errors.New("revenue.service: internal error")
)
