package status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("status.service: invalid input data")

	// ErrNoActiveSession возвращается, когда для номера нет активной сессии
	ErrNoActiveSession = errors.New("status.service: no active session for plate")

	// ErrSpotNotFound возвращается, когда в пределах допуска нет места
	ErrSpotNotFound = errors.New("status.service: no spot within GPS tolerance")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("status.service: internal error")
)
