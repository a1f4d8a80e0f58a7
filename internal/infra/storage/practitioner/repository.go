package practitioner

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vitahub/VH-BookingService/internal/domain"
	"github.com/vitahub/VH-BookingService/pkg/dbmetrics"
	"github.com/vitahub/VH-BookingService/pkg/psqlbuilder"
)

var practitionerColumns = []string{
	"owner_id",
	"booking_code",
	"display_name",
	"email",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с профилями практиционеров (franchise_profiles)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBookingCode получает практиционера по публичному коду бронирования
func (r *Repository) GetByBookingCode(ctx context.Context, bookingCode string) (*domain.Practitioner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(practitionerColumns...).
		From("franchise_profiles").
		Where(squirrel.Eq{"booking_code": bookingCode}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingCode - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPractitioner(executor.QueryRowContext(ctx, query, args...), "GetByBookingCode")
}

// GetByOwnerID получает практиционера по ID владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Practitioner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(practitionerColumns...).
		From("franchise_profiles").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPractitioner(executor.QueryRowContext(ctx, query, args...), "GetByOwnerID")
}

// scanPractitioner сканирует одну строку результата в профиль
func (r *Repository) scanPractitioner(row *sql.Row, op string) (*domain.Practitioner, error) {
	var p domain.Practitioner
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.OwnerID,
		&p.BookingCode,
		&p.DisplayName,
		&p.Email,
		&p.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPractitionerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan practitioner: %v", ErrScanRow, op, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
