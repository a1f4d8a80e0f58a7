package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vitahub/VH-BookingService/internal/domain"
	bookingRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/booking"
	practitionerRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/practitioner"
	"github.com/vitahub/VH-BookingService/internal/integrations/notifier"
)

// UseCase use case для создания бронирования клиентом
type UseCase struct {
	bookingRepo      BookingRepository
	ruleRepo         RuleRepository
	practitionerRepo PractitionerRepository
	outboxRepo       OutboxRepository
	calendar         WorkCalendar
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	practitionerRepo PractitionerRepository,
	outboxRepo OutboxRepository,
	calendar WorkCalendar,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		ruleRepo:         ruleRepo,
		practitionerRepo: practitionerRepo,
		outboxRepo:       outboxRepo,
		calendar:         calendar,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости слота и вставка выполняются в одной сериализуемой
// транзакции с блокировкой строк. Частичный уникальный индекс по живым
// бронированиям закрывает оставшуюся гонку: из двух параллельных созданий
// одного слота ровно одно фиксируется, второе получает ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: code=%s, date=%s, time=%s",
		req.BookingCode, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Находим практиционера по публичному коду
	practitioner, err := uc.practitionerRepo.GetByBookingCode(ctx, req.BookingCode)
	if err != nil {
		if errors.Is(err, practitionerRepo.ErrPractitionerNotFound) {
			uc.logger.Warn("CreateBooking: booking code=%s not found", req.BookingCode)
			return nil, ErrPractitionerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get practitioner by code=%s: %v", req.BookingCode, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	if !practitioner.IsActive {
		uc.logger.Warn("CreateBooking: practitioner owner=%d is inactive", practitioner.OwnerID)
		return nil, ErrPractitionerNotFound
	}

	// 5. Производственный календарь: на выходные и праздники слотов нет
	if isHoliday, isWeekend, label := uc.calendar.NonWorkingDay(req.Date); isHoliday || isWeekend {
		uc.logger.Warn("CreateBooking: %s is a non-working day (%s)", req.Date.Format(domain.DateFormat), label)
		return nil, ErrNonWorkingDay
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем правила доступности, применимые к дате
		rules, err := uc.ruleRepo.GetForDate(txCtx, practitioner.OwnerID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get rules: %v", err)
			return fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}

		// 6.2. Время начала должно совпадать со слотом, порождаемым правилами
		ok, err := isCandidateStart(rules, req.StartTime, domain.SlotDurationMinutes)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to match candidate slot: %v", err)
			return fmt.Errorf("%w: failed to match candidate slot: %v", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("CreateBooking: time %s is not a valid slot for owner=%d on %s",
				req.StartTime, practitioner.OwnerID, req.Date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}

		// 6.3. Получаем живые бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetLiveByOwnerAndDate(txCtx, practitioner.OwnerID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.4. Проверяем занятость слота
		overlappingCount, err := countOverlappingBookings(req.StartTime, domain.SlotDurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlappingCount > 0 {
			uc.logger.Warn("CreateBooking: slot %s already taken for owner=%d",
				req.StartTime, practitioner.OwnerID)
			return ErrSlotNotAvailable
		}

		// 6.5. Создаем бронирование
		booking := &domain.Booking{
			Reference:       uuid.NewString(),
			OwnerID:         practitioner.OwnerID,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: domain.SlotDurationMinutes,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s lost to a concurrent booking for owner=%d",
					req.StartTime, practitioner.OwnerID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.6. Ставим уведомления в очередь в той же транзакции:
		// извещение практиционеру и подтверждение приёма заявки клиенту
		if err := uc.enqueueNotifications(txCtx, created, practitioner); err != nil {
			uc.logger.Error("CreateBooking: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s", result.ID, result.Reference)

	// Конвертируем в response
	resp := &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		OwnerID:         result.OwnerID,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}

	if endTime, err := result.EndTime(); err == nil {
		resp.EndTime = endTime
	}

	return resp, nil
}

// enqueueNotifications ставит в очередь пару событий о новом бронировании
func (uc *UseCase) enqueueNotifications(ctx context.Context, booking *domain.Booking, practitioner *domain.Practitioner) error {
	payload := notifier.BookingPayload{
		Reference:        booking.Reference,
		OwnerID:          booking.OwnerID,
		PractitionerName: practitioner.DisplayName,
		CustomerName:     booking.CustomerName,
		CustomerEmail:    booking.CustomerEmail,
		BookingDate:      booking.BookingDate.Format(domain.DateFormat),
		StartTime:        booking.StartTime.String(),
		Status:           string(booking.Status),
	}

	if endTime, err := booking.EndTime(); err == nil {
		payload.EndTime = endTime.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := uc.outboxRepo.Enqueue(ctx, domain.NotificationBookingCreated, body); err != nil {
		return err
	}

	_, err = uc.outboxRepo.Enqueue(ctx, domain.NotificationBookingReceived, body)
	return err
}
