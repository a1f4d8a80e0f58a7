package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/vitahub/VH-BookingService/internal/domain"
	"github.com/vitahub/VH-BookingService/pkg/dbmetrics"
	"github.com/vitahub/VH-BookingService/pkg/psqlbuilder"
)

var eventColumns = []string{
	"id",
	"function",
	"payload",
	"status",
	"attempts",
	"last_error",
	"created_at",
	"processed_at",
}

// Repository репозиторий для работы с очередью уведомлений (notification_events)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue добавляет событие в очередь. Вызывается внутри транзакции бронирования,
// чтобы событие и изменение бронирования фиксировались атомарно
func (r *Repository) Enqueue(ctx context.Context, function string, payload []byte) (*domain.NotificationEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	event := &domain.NotificationEvent{
		ID:       uuid.NewString(),
		Function: function,
		Payload:  payload,
		Status:   domain.NotificationStatusPending,
	}

	query, args, err := psqlbuilder.Insert("notification_events").
		Columns("id", "function", "payload", "status").
		Values(event.ID, event.Function, event.Payload, event.Status).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time

	return event, nil
}

// ClaimPending забирает пачку ожидающих событий для доставки.
// FOR UPDATE SKIP LOCKED позволяет запускать несколько воркеров без дублей
func (r *Repository) ClaimPending(ctx context.Context, limit int, maxAttempts int) ([]*domain.NotificationEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("notification_events").
		Where(squirrel.Eq{"status": domain.NotificationStatusPending}).
		Where(squirrel.Lt{"attempts": maxAttempts}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.NotificationEvent, 0, limit)

	for rows.Next() {
		var event domain.NotificationEvent
		var createdAt, processedAt sql.NullTime

		err := rows.Scan(
			&event.ID,
			&event.Function,
			&event.Payload,
			&event.Status,
			&event.Attempts,
			&event.LastError,
			&createdAt,
			&processedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ClaimPending - scan event: %v", ErrScanRow, err)
		}

		event.CreatedAt = createdAt.Time
		if processedAt.Valid {
			event.ProcessedAt = &processedAt.Time
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// MarkSent помечает событие как доставленное
func (r *Repository) MarkSent(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notification_events").
		Set("status", domain.NotificationStatusSent).
		Set("processed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execMark(ctx, executor, query, args, "MarkSent")
}

// MarkFailed увеличивает счетчик попыток и сохраняет последнюю ошибку.
// После maxAttempts неудачных попыток событие переводится в failed
func (r *Repository) MarkFailed(ctx context.Context, id string, lastError string, maxAttempts int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notification_events").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", lastError).
		Set("status", squirrel.Expr(
			"CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
			maxAttempts,
			string(domain.NotificationStatusFailed),
			string(domain.NotificationStatusPending),
		)).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execMark(ctx, executor, query, args, "MarkFailed")
}

func (r *Repository) execMark(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
