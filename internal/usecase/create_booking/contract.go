package create_booking

import (
	"context"
	"time"

	"github.com/vitahub/VH-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetLiveByOwnerAndDate получает живые бронирования практиционера на дату
	// Внутри транзакции строки блокируются через FOR UPDATE
	GetLiveByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) ([]*domain.Booking, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	GetForDate(ctx context.Context, ownerID int64, date time.Time) ([]*domain.AvailabilityRule, error)
}

// PractitionerRepository интерфейс репозитория профилей практиционеров
type PractitionerRepository interface {
	GetByBookingCode(ctx context.Context, bookingCode string) (*domain.Practitioner, error)
}

// OutboxRepository интерфейс очереди уведомлений
type OutboxRepository interface {
	Enqueue(ctx context.Context, function string, payload []byte) (*domain.NotificationEvent, error)
}

// WorkCalendar интерфейс производственного календаря
type WorkCalendar interface {
	NonWorkingDay(date time.Time) (isHoliday bool, isWeekend bool, label string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
