package outbox

import "errors"

var (
	// ErrEventNotFound событие не найдено
	ErrEventNotFound = errors.New("outbox.repository: event not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("outbox.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("outbox.repository: failed to scan row")
)
