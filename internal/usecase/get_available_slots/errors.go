package get_available_slots

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда код бронирования не найден
	// или профиль практиционера выключен
	ErrPractitionerNotFound = errors.New("practitioner not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
