package create_booking

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/vitahub/VH-BookingService/internal/domain"
	"github.com/vitahub/VH-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
// Выполняется до любых обращений к хранилищу
func validateRequest(req *Request) error {
	if req.BookingCode == "" {
		return fmt.Errorf("%w: booking code is required", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: invalid customerEmail format", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isCandidateStart проверяет, что время начала совпадает с одним из слотов,
// порождаемых окнами правил с фиксированным шагом slotDuration
// Неполный хвост окна слотом не является
func isCandidateStart(rules []*domain.AvailabilityRule, startTime types.TimeString, slotDuration int) (bool, error) {
	for _, rule := range rules {
		if !rule.HasValidWindow() {
			continue
		}

		currentSlot := rule.StartTime

		for currentSlot.IsBefore(rule.EndTime) {
			slotEnd, err := currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return false, err
			}
			if slotEnd.IsAfter(rule.EndTime) {
				break
			}

			if currentSlot == startTime {
				return true, nil
			}

			currentSlot, err = currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return false, err
			}
		}
	}

	return false, nil
}

// countOverlappingBookings подсчитывает количество живых бронирований на указанный слот
func countOverlappingBookings(
	startTime types.TimeString,
	slotDuration int,
	bookings []*domain.Booking,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(slotDuration)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, booking := range bookings {
		// Пропускаем отменённые и завершённые бронирования
		if !booking.IsLive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.EndTime()
		if err != nil {
			// Если не можем вычислить конец бронирования, пропускаем
			continue
		}

		// Проверяем пересечение (строгие неравенства, граничные случаи не считаются)
		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(startTime) {
			count++
		}
	}

	return count, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
