package sector

import "errors"

var (
	// ErrSectorNotFound возвращается, когда сектор не найден
	ErrSectorNotFound = errors.New("sector.repository: sector not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sector.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sector.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sector.repository: failed to scan row")
)
