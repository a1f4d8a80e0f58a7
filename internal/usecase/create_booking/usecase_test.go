package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitahub/VH-BookingService/internal/domain"
	bookingRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/booking"
	"github.com/vitahub/VH-BookingService/pkg/types"
)

// Моки зависимостей

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type mockBookingRepo struct {
	bookings  []*domain.Booking
	created   *domain.Booking
	createErr error
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := *booking
	created.ID = 1
	m.created = &created
	return &created, nil
}

func (m *mockBookingRepo) GetLiveByOwnerAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return m.bookings, nil
}

type mockRuleRepo struct {
	rules []*domain.AvailabilityRule
}

func (m *mockRuleRepo) GetForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.AvailabilityRule, error) {
	return m.rules, nil
}

type mockPractitionerRepo struct {
	practitioner *domain.Practitioner
	err          error
}

func (m *mockPractitionerRepo) GetByBookingCode(_ context.Context, _ string) (*domain.Practitioner, error) {
	return m.practitioner, m.err
}

type mockOutboxRepo struct {
	enqueued []string
}

func (m *mockOutboxRepo) Enqueue(_ context.Context, function string, _ []byte) (*domain.NotificationEvent, error) {
	m.enqueued = append(m.enqueued, function)
	return &domain.NotificationEvent{Function: function}, nil
}

type mockCalendar struct {
	isHoliday bool
	isWeekend bool
	label     string
}

func (m *mockCalendar) NonWorkingDay(_ time.Time) (bool, bool, string) {
	return m.isHoliday, m.isWeekend, m.label
}

// inlineTxManager выполняет функцию без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Фикстуры

var (
	testNow  = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	activePractitioner = &domain.Practitioner{
		OwnerID:     42,
		BookingCode: "dr-smith",
		DisplayName: "Dr. Smith",
		IsActive:    true,
	}

	workingRules = []*domain.AvailabilityRule{
		{StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}
)

type testEnv struct {
	uc       *UseCase
	bookings *mockBookingRepo
	outbox   *mockOutboxRepo
}

func newTestEnv(bookings *mockBookingRepo, rules *mockRuleRepo, practitioners *mockPractitionerRepo, cal *mockCalendar) *testEnv {
	outbox := &mockOutboxRepo{}
	uc := NewUseCase(bookings, rules, practitioners, outbox, cal, inlineTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return &testEnv{uc: uc, bookings: bookings, outbox: outbox}
}

func testRequest() *Request {
	return &Request{
		BookingCode:   "dr-smith",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Date:          testDate,
		StartTime:     "10:00",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	env := newTestEnv(
		&mockBookingRepo{},
		&mockRuleRepo{rules: workingRules},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
	)

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.OwnerID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, domain.SlotDurationMinutes, resp.DurationMinutes)
	assert.NotEmpty(t, resp.Reference)

	// Клиент и практиционер получают по событию в одной транзакции с созданием
	assert.Equal(t, []string{
		domain.NotificationBookingCreated,
		domain.NotificationBookingReceived,
	}, env.outbox.enqueued)
}

func TestExecute_NotesOptional(t *testing.T) {
	// Заметки опциональны: nil уходит в репозиторий как есть
	// и хранится в nullable-колонке как NULL
	env := newTestEnv(
		&mockBookingRepo{},
		&mockRuleRepo{rules: workingRules},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
	)

	req := testRequest()
	req.Notes = nil

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, env.bookings.created)
	assert.Nil(t, env.bookings.created.Notes)
	assert.Nil(t, resp.Notes)

	notes := "ground floor entrance"
	withNotes := testRequest()
	withNotes.StartTime = "11:00"
	withNotes.Notes = &notes

	resp, err = env.uc.Execute(context.Background(), withNotes)
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, notes, *resp.Notes)
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	taken := &domain.Booking{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed}

	env := newTestEnv(
		&mockBookingRepo{bookings: []*domain.Booking{taken}},
		&mockRuleRepo{rules: workingRules},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
	)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, env.outbox.enqueued)
}

func TestExecute_ConcurrentCreateLosesGracefully(t *testing.T) {
	// Конкурент успел вставить бронирование между чтением и вставкой:
	// уникальный индекс возвращает ErrSlotTaken
	env := newTestEnv(
		&mockBookingRepo{createErr: bookingRepo.ErrSlotTaken},
		&mockRuleRepo{rules: workingRules},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
	)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TimeNotOnSlotGrid(t *testing.T) {
	env := newTestEnv(
		&mockBookingRepo{},
		&mockRuleRepo{rules: workingRules},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
	)

	req := testRequest()
	req.StartTime = "10:30"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_NoRulesForDate(t *testing.T) {
	env := newTestEnv(
		&mockBookingRepo{},
		&mockRuleRepo{rules: nil},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
	)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	tests := []struct {
		name string
		cal  *mockCalendar
	}{
		{name: "weekend", cal: &mockCalendar{isWeekend: true}},
		{name: "holiday", cal: &mockCalendar{isHoliday: true, label: "Christmas Day"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(
				&mockBookingRepo{},
				&mockRuleRepo{rules: workingRules},
				&mockPractitionerRepo{practitioner: activePractitioner},
				tt.cal,
			)

			_, err := env.uc.Execute(context.Background(), testRequest())
			assert.ErrorIs(t, err, ErrNonWorkingDay)
		})
	}
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(
		&mockBookingRepo{},
		&mockRuleRepo{rules: workingRules},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
	)

	req := testRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InactivePractitioner(t *testing.T) {
	inactive := &domain.Practitioner{OwnerID: 42, BookingCode: "dr-smith", IsActive: false}

	env := newTestEnv(
		&mockBookingRepo{},
		&mockRuleRepo{rules: workingRules},
		&mockPractitionerRepo{practitioner: inactive},
		&mockCalendar{},
	)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}
