package availability

import (
	"context"
	"time"

	"github.com/vitahub/VH-BookingService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	GetAllByOwner(ctx context.Context, ownerID int64, onlyActive bool) ([]*domain.AvailabilityRule, error)
	GetForDate(ctx context.Context, ownerID int64, date time.Time) ([]*domain.AvailabilityRule, error)
	Update(ctx context.Context, id int64, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
