package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrDuplicateActiveSession возвращается при попытке создать вторую
	// активную сессию для одного госномера (нарушение частичного уникального индекса)
	ErrDuplicateActiveSession = errors.New("session.repository: active session already exists for plate")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
