package get_available_slots

import (
	"context"
	"time"

	"github.com/vitahub/VH-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetLiveByOwnerAndDate получает живые (pending, confirmed) бронирования
	// практиционера на конкретную дату
	GetLiveByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) ([]*domain.Booking, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	// GetForDate получает активные правила, применимые к дате
	GetForDate(ctx context.Context, ownerID int64, date time.Time) ([]*domain.AvailabilityRule, error)
}

// PractitionerRepository интерфейс репозитория профилей практиционеров
type PractitionerRepository interface {
	GetByBookingCode(ctx context.Context, bookingCode string) (*domain.Practitioner, error)
}

// WorkCalendar интерфейс производственного календаря
type WorkCalendar interface {
	NonWorkingDay(date time.Time) (isHoliday bool, isWeekend bool, label string)
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
