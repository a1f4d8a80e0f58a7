package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vitahub/VH-BookingService/internal/domain"
	bookingRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/booking"
	practitionerRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/practitioner"
	"github.com/vitahub/VH-BookingService/internal/integrations/notifier"
	"github.com/vitahub/VH-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo      BookingRepository
	practitionerRepo PractitionerRepository
	outboxRepo       OutboxRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	practitionerRepo PractitionerRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		practitionerRepo: practitionerRepo,
		outboxRepo:       outboxRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Доступно только практиционеру, которому принадлежит бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if booking.OwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичному коду.
// Код - непредсказуемый UUID из письма клиенту, дополнительной проверки прав нет
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetOwnerBookings получает бронирования практиционера с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
//
// Примеры использования:
// - Все живые и завершённые бронирования: GetOwnerBookings(ctx, &GetOwnerBookingsRequest{OwnerID: 123, UserID: 123})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetOwnerBookings: fetching bookings for owner=%d, user=%d", req.OwnerID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Практиционер видит только собственный календарь
	if req.OwnerID != req.UserID {
		s.logger.Warn("GetOwnerBookings: access denied for user=%d to owner=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOwnerBookings: invalid filter for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование с обязательной причиной
// Отмена и постановка уведомления в очередь выполняются в одной транзакции
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason == "" {
		s.logger.Warn("Cancel: empty cancellation reason for booking id=%d", bookingID)
		return ErrReasonRequired
	}
	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if booking.OwnerID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	// Отменить можно только живое бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			return err
		}

		return s.enqueueNotification(txCtx, booking, domain.NotificationBookingCancelled, domain.StatusCancelled, &req.CancellationReason)
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: transaction error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Допустимые переходы: pending -> confirmed -> completed
// Перевод в cancelled выполняется через Cancel, так как требует причину
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested through status update for booking id=%d", bookingID)
		return fmt.Errorf("%w: use the cancel operation to cancel a booking", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return err
	}

	if booking.OwnerID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidTransition
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			return err
		}

		// Клиент получает письмо только о подтверждении
		if newStatus == domain.StatusConfirmed {
			return s.enqueueNotification(txCtx, booking, domain.NotificationBookingConfirmed, newStatus, nil)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: transaction error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

// enqueueNotification ставит уведомление в очередь в рамках текущей транзакции.
// status - статус бронирования после изменения, а не тот, что был прочитан
func (s *Service) enqueueNotification(ctx context.Context, booking *domain.Booking, function string, status domain.BookingStatus, reason *string) error {
	payload := notifier.BookingPayload{
		Reference:     booking.Reference,
		OwnerID:       booking.OwnerID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
		Status:        string(status),
		Reason:        reason,
	}

	if endTime, err := booking.EndTime(); err == nil {
		payload.EndTime = endTime.String()
	}

	// Имя практиционера денормализуется в payload, чтобы доставка
	// не ходила в базу
	practitioner, err := s.practitionerRepo.GetByOwnerID(ctx, booking.OwnerID)
	if err != nil {
		if !errors.Is(err, practitionerRepo.ErrPractitionerNotFound) {
			return err
		}
	} else {
		payload.PractitionerName = practitioner.DisplayName
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = s.outboxRepo.Enqueue(ctx, function, body)
	return err
}
