package practitioner

import "errors"

var (
	// ErrPractitionerNotFound практиционер не найден
	ErrPractitionerNotFound = errors.New("practitioner.repository: practitioner not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("practitioner.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("practitioner.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("practitioner.repository: failed to scan row")
)
