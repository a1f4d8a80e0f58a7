package bookings

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitahub/VH-BookingService/internal/domain"
	bookingRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/booking"
	practitionerRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/practitioner"
	"github.com/vitahub/VH-BookingService/internal/integrations/notifier"
	"github.com/vitahub/VH-BookingService/internal/service/bookings/models"
	"github.com/vitahub/VH-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// inlineTxManager выполняет функции без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockBookingRepo struct {
	bookings map[int64]*domain.Booking

	updatedStatus *domain.BookingStatus
	cancelReason  *string
}

func newMockBookingRepo(bookings ...*domain.Booking) *mockBookingRepo {
	m := &mockBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (m *mockBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	for _, b := range m.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) GetByOwnerWithFilter(_ context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.OwnerID == filter.OwnerID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	m.updatedStatus = &status
	return nil
}

func (m *mockBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	m.cancelReason = &reason
	return nil
}

type mockPractitionerRepo struct {
	practitioner *domain.Practitioner
}

func (m *mockPractitionerRepo) GetByOwnerID(_ context.Context, _ int64) (*domain.Practitioner, error) {
	if m.practitioner == nil {
		return nil, practitionerRepo.ErrPractitionerNotFound
	}
	return m.practitioner, nil
}

type enqueuedEvent struct {
	function string
	payload  []byte
}

type mockOutboxRepo struct {
	events []enqueuedEvent
}

func (m *mockOutboxRepo) Enqueue(_ context.Context, function string, payload []byte) (*domain.NotificationEvent, error) {
	m.events = append(m.events, enqueuedEvent{function: function, payload: payload})
	return &domain.NotificationEvent{Function: function}, nil
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		Reference:       "ref-123",
		OwnerID:         42,
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
	}
}

func newTestService(bookings *mockBookingRepo) (*Service, *mockOutboxRepo) {
	outbox := &mockOutboxRepo{}
	practitioners := &mockPractitionerRepo{
		practitioner: &domain.Practitioner{OwnerID: 42, DisplayName: "Dr. Smith", IsActive: true},
	}
	return NewService(bookings, practitioners, outbox, inlineTxManager{}, nopLogger{}), outbox
}

func TestGetByID(t *testing.T) {
	repo := newMockBookingRepo(testBooking(domain.StatusPending))
	svc, _ := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "11:00", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 999, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByReference(t *testing.T) {
	repo := newMockBookingRepo(testBooking(domain.StatusConfirmed))
	svc, _ := newTestService(repo)

	// Доступ по коду из письма, без проверки пользователя
	resp, err := svc.GetByReference(context.Background(), "ref-123")
	require.NoError(t, err)
	assert.Equal(t, "ref-123", resp.Reference)

	_, err = svc.GetByReference(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetOwnerBookings_AccessDenied(t *testing.T) {
	repo := newMockBookingRepo(testBooking(domain.StatusPending))
	svc, _ := newTestService(repo)

	_, err := svc.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
		UserID:  7,
		OwnerID: 42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		from      domain.BookingStatus
		to        string
		wantErr   error
		wantEvent *string
	}{
		{
			name: "pending to confirmed notifies customer",
			from: domain.StatusPending, to: "confirmed",
			wantEvent: ptr.Ptr(domain.NotificationBookingConfirmed),
		},
		{
			name: "confirmed to completed is silent",
			from: domain.StatusConfirmed, to: "completed",
		},
		{
			name: "pending to completed skips confirmation",
			from: domain.StatusPending, to: "completed",
			wantErr: ErrInvalidTransition,
		},
		{
			name: "completed is terminal",
			from: domain.StatusCompleted, to: "confirmed",
			wantErr: ErrInvalidTransition,
		},
		{
			name: "cancellation goes through the cancel operation",
			from: domain.StatusPending, to: "cancelled",
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown status",
			from: domain.StatusPending, to: "archived",
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockBookingRepo(testBooking(tt.from))
			svc, outbox := newTestService(repo)

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				UserID: 42,
				Status: tt.to,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.updatedStatus)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, repo.updatedStatus)
			assert.Equal(t, domain.BookingStatus(tt.to), *repo.updatedStatus)

			if tt.wantEvent == nil {
				assert.Empty(t, outbox.events)
				return
			}

			require.Len(t, outbox.events, 1)
			assert.Equal(t, *tt.wantEvent, outbox.events[0].function)

			// Payload несёт статус после перехода
			var payload notifier.BookingPayload
			require.NoError(t, json.Unmarshal(outbox.events[0].payload, &payload))
			assert.Equal(t, tt.to, payload.Status)
			assert.Equal(t, "Dr. Smith", payload.PractitionerName)
		})
	}
}

func TestUpdateStatus_AccessDenied(t *testing.T) {
	repo := newMockBookingRepo(testBooking(domain.StatusPending))
	svc, _ := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 7,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	repo := newMockBookingRepo(testBooking(domain.StatusConfirmed))
	svc, outbox := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             42,
		CancellationReason: "customer moved away",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelReason)
	assert.Equal(t, "customer moved away", *repo.cancelReason)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, domain.NotificationBookingCancelled, outbox.events[0].function)

	var payload notifier.BookingPayload
	require.NoError(t, json.Unmarshal(outbox.events[0].payload, &payload))
	assert.Equal(t, string(domain.StatusCancelled), payload.Status)
	require.NotNil(t, payload.Reason)
	assert.Equal(t, "customer moved away", *payload.Reason)
}

func TestCancel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		req     *models.CancelBookingRequest
		wantErr error
	}{
		{
			name:    "reason is required",
			status:  domain.StatusPending,
			req:     &models.CancelBookingRequest{UserID: 42},
			wantErr: ErrReasonRequired,
		},
		{
			name:    "foreign booking",
			status:  domain.StatusPending,
			req:     &models.CancelBookingRequest{UserID: 7, CancellationReason: "reason"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "completed cannot be cancelled",
			status:  domain.StatusCompleted,
			req:     &models.CancelBookingRequest{UserID: 42, CancellationReason: "reason"},
			wantErr: ErrCannotCancel,
		},
		{
			name:    "already cancelled",
			status:  domain.StatusCancelled,
			req:     &models.CancelBookingRequest{UserID: 42, CancellationReason: "reason"},
			wantErr: ErrCannotCancel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockBookingRepo(testBooking(tt.status))
			svc, outbox := newTestService(repo)

			err := svc.Cancel(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.cancelReason)
			assert.Empty(t, outbox.events)
		})
	}
}

