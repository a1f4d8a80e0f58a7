package outbox

import (
	"context"

	"github.com/vitahub/VH-BookingService/internal/domain"
)

// OutboxRepository интерфейс очереди уведомлений
type OutboxRepository interface {
	ClaimPending(ctx context.Context, limit int, maxAttempts int) ([]*domain.NotificationEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, lastError string, maxAttempts int) error
}

// NotifierClient интерфейс клиента шлюза уведомлений
type NotifierClient interface {
	Invoke(ctx context.Context, function string, payload []byte) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
