package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitahub/VH-BookingService/internal/domain"
	practitionerRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/practitioner"
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
	bookings []*domain.Booking
	err      error
}

func (m *mockBookingRepo) GetLiveByOwnerAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return m.bookings, m.err
}

type mockRuleRepo struct {
	rules []*domain.AvailabilityRule
	err   error
}

func (m *mockRuleRepo) GetForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.AvailabilityRule, error) {
	return m.rules, m.err
}

type mockPractitionerRepo struct {
	practitioner *domain.Practitioner
	err          error
}

func (m *mockPractitionerRepo) GetByBookingCode(_ context.Context, _ string) (*domain.Practitioner, error) {
	return m.practitioner, m.err
}

type mockCalendar struct {
	isHoliday bool
	isWeekend bool
	label     string
}

func (m *mockCalendar) NonWorkingDay(_ time.Time) (bool, bool, string) {
	return m.isHoliday, m.isWeekend, m.label
}

func newTestUseCase(
	bookings *mockBookingRepo,
	rules *mockRuleRepo,
	practitioners *mockPractitionerRepo,
	cal *mockCalendar,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, rules, practitioners, cal, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

var (
	testNow  = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) // рабочая среда

	activePractitioner = &domain.Practitioner{
		OwnerID:     42,
		BookingCode: "dr-smith",
		DisplayName: "Dr. Smith",
		IsActive:    true,
	}
)

func TestExecute_ReturnsSlotsWithAvailability(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		{StartTime: "09:00", EndTime: "12:00", IsActive: true},
	}
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	uc := newTestUseCase(
		&mockBookingRepo{bookings: bookings},
		&mockRuleRepo{rules: rules},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BookingCode: "dr-smith", Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.OwnerID)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available) // занят бронированием
	assert.True(t, resp.Slots[2].Available)
}

func TestExecute_PractitionerNotFound(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{},
		&mockRuleRepo{},
		&mockPractitionerRepo{err: practitionerRepo.ErrPractitionerNotFound},
		&mockCalendar{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BookingCode: "missing", Date: testDate})
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestExecute_InactivePractitionerLooksMissing(t *testing.T) {
	inactive := &domain.Practitioner{OwnerID: 42, BookingCode: "dr-smith", IsActive: false}

	uc := newTestUseCase(
		&mockBookingRepo{},
		&mockRuleRepo{},
		&mockPractitionerRepo{practitioner: inactive},
		&mockCalendar{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BookingCode: "dr-smith", Date: testDate})
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{},
		&mockRuleRepo{rules: []*domain.AvailabilityRule{{StartTime: "09:00", EndTime: "17:00", IsActive: true}}},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
		testNow,
	)

	yesterday := testNow.AddDate(0, 0, -1)
	resp, err := uc.Execute(context.Background(), &Request{BookingCode: "dr-smith", Date: yesterday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NonWorkingDayReturnsEmpty(t *testing.T) {
	tests := []struct {
		name string
		cal  *mockCalendar
	}{
		{name: "weekend", cal: &mockCalendar{isWeekend: true}},
		{name: "holiday", cal: &mockCalendar{isHoliday: true, label: "Labour Day"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Правила на эту дату есть, но календарь их перекрывает
			uc := newTestUseCase(
				&mockBookingRepo{},
				&mockRuleRepo{rules: []*domain.AvailabilityRule{{StartTime: "09:00", EndTime: "17:00", IsActive: true}}},
				&mockPractitionerRepo{practitioner: activePractitioner},
				tt.cal,
				testNow,
			)

			resp, err := uc.Execute(context.Background(), &Request{BookingCode: "dr-smith", Date: testDate})
			require.NoError(t, err)
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestExecute_NoRulesReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{},
		&mockRuleRepo{rules: nil},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BookingCode: "dr-smith", Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{},
		&mockRuleRepo{},
		&mockPractitionerRepo{practitioner: activePractitioner},
		&mockCalendar{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BookingCode: "", Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingCode: "dr-smith"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
