package create_booking

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда код бронирования не найден
	// или профиль практиционера выключен
	ErrPractitionerNotFound = errors.New("create_booking: practitioner not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrNonWorkingDay возвращается при бронировании на выходной или праздник
	ErrNonWorkingDay = errors.New("create_booking: date is a non-working day")

	// ErrInvalidTimeSlot возвращается, когда время начала не совпадает
	// ни с одним слотом, порождаемым правилами доступности
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
