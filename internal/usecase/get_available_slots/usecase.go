package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitahub/VH-BookingService/internal/domain"
	practitionerRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/practitioner"
)

// UseCase use case для получения слотов практиционера на дату
type UseCase struct {
	bookingRepo      BookingRepository
	ruleRepo         RuleRepository
	practitionerRepo PractitionerRepository
	calendar         WorkCalendar
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	practitionerRepo PractitionerRepository,
	calendar WorkCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		ruleRepo:         ruleRepo,
		practitionerRepo: practitionerRepo,
		calendar:         calendar,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: code=%s, date=%s",
		req.BookingCode, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Находим практиционера по публичному коду
	practitioner, err := uc.practitionerRepo.GetByBookingCode(ctx, req.BookingCode)
	if err != nil {
		if errors.Is(err, practitionerRepo.ErrPractitionerNotFound) {
			uc.logger.Warn("GetAvailableSlots: booking code=%s not found", req.BookingCode)
			return nil, ErrPractitionerNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get practitioner by code=%s: %v", req.BookingCode, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	// Выключенный профиль наружу не отличается от несуществующего
	if !practitioner.IsActive {
		uc.logger.Warn("GetAvailableSlots: practitioner owner=%d is inactive", practitioner.OwnerID)
		return nil, ErrPractitionerNotFound
	}

	emptyResponse := &Response{
		Date:        req.Date,
		BookingCode: req.BookingCode,
		OwnerID:     practitioner.OwnerID,
		Slots:       []Slot{},
	}

	// 3. Прошедшие даты не бронируются
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 4. Производственный календарь проверяется раньше правил:
	// праздник перекрывает даже явное правило на эту дату
	if isHoliday, isWeekend, label := uc.calendar.NonWorkingDay(req.Date); isHoliday || isWeekend {
		uc.logger.Info("GetAvailableSlots: %s is a non-working day (%s)", req.Date.Format(domain.DateFormat), label)
		return emptyResponse, nil
	}

	// 5. Получаем правила доступности, применимые к дате
	rules, err := uc.ruleRepo.GetForDate(ctx, practitioner.OwnerID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for owner=%d: %v", practitioner.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: no rules for owner=%d on %s",
			practitioner.OwnerID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 6. Генерируем кандидатов слотов по окнам правил
	candidates, err := generateCandidates(rules, domain.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 7. Получаем живые бронирования на эту дату
	bookings, err := uc.bookingRepo.GetLiveByOwnerAndDate(ctx, practitioner.OwnerID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Помечаем занятые слоты
	slots := markAvailability(candidates, domain.SlotDurationMinutes, bookings)

	uc.logger.Info("GetAvailableSlots: generated %d slots for owner=%d, date=%s",
		len(slots), practitioner.OwnerID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:        req.Date,
		BookingCode: req.BookingCode,
		OwnerID:     practitioner.OwnerID,
		Slots:       slots,
	}, nil
}
