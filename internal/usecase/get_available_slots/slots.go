package get_available_slots

import (
	"sort"

	"github.com/vitahub/VH-BookingService/internal/domain"
	"github.com/vitahub/VH-BookingService/pkg/types"
)

// generateCandidates генерирует кандидатов слотов по списку правил доступности
// Каждое окно обходится с фиксированным шагом slotDuration от начала окна,
// неполный хвост окна отбрасывается. Окна разных правил могут пересекаться,
// поэтому кандидаты дедуплицируются по времени начала и сортируются
func generateCandidates(rules []*domain.AvailabilityRule, slotDuration int) ([]types.TimeString, error) {
	seen := make(map[string]struct{})
	candidates := make([]types.TimeString, 0)

	for _, rule := range rules {
		// Правило с вывернутым окном не даёт слотов
		if !rule.HasValidWindow() {
			continue
		}

		currentSlot := rule.StartTime

		for currentSlot.IsBefore(rule.EndTime) {
			// Проверяем, что слот не выходит за конец окна
			slotEnd, err := currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return nil, err
			}
			if slotEnd.IsAfter(rule.EndTime) {
				break
			}

			if _, ok := seen[currentSlot.String()]; !ok {
				seen[currentSlot.String()] = struct{}{}
				candidates = append(candidates, currentSlot)
			}

			currentSlot, err = currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].IsBefore(candidates[j])
	})

	return candidates, nil
}

// markAvailability строит итоговый список слотов с признаком доступности
// Слот занят, если с ним пересекается хотя бы одно живое бронирование
func markAvailability(candidates []types.TimeString, slotDuration int, bookings []*domain.Booking) []Slot {
	result := make([]Slot, 0, len(candidates))

	for _, slotStart := range candidates {
		slotEnd, err := slotStart.AddMinutes(slotDuration)
		if err != nil {
			continue
		}

		result = append(result, Slot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: slotDuration,
			Available:       countOverlappingBookings(slotStart, slotEnd, bookings) == 0,
		})
	}

	return result
}

// countOverlappingBookings подсчитывает количество живых бронирований,
// пересекающихся с указанным слотом
// Интервалы полуоткрытые, поэтому используются строгие неравенства:
// если бронирование заканчивается ровно там, где начинается слот
// (или наоборот) - это НЕ пересечение
//
// Примеры:
// - Слот 11:00-12:00, бронирование 11:00-12:00 → ЕСТЬ пересечение
// - Слот 11:00-12:00, бронирование 10:00-11:00 → НЕТ пересечения (граничат)
// - Слот 11:00-12:00, бронирование 12:00-13:00 → НЕТ пересечения (граничат)
func countOverlappingBookings(slotStart, slotEnd types.TimeString, bookings []*domain.Booking) int {
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

		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}
