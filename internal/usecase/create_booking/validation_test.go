package create_booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitahub/VH-BookingService/internal/domain"
	"github.com/vitahub/VH-BookingService/pkg/types"
)

func validRequest() *Request {
	return &Request{
		BookingCode:   "dr-smith",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Date:          time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validateRequest(validRequest()))
	})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing booking code", mutate: func(r *Request) { r.BookingCode = "" }},
		{name: "missing customer name", mutate: func(r *Request) { r.CustomerName = "" }},
		{name: "customer name too long", mutate: func(r *Request) {
			r.CustomerName = strings.Repeat("a", domain.MaxCustomerNameLength+1)
		}},
		{name: "missing email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "malformed email", mutate: func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{name: "missing date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "invalid start time format", mutate: func(r *Request) { r.StartTime = "25:00" }},
		{name: "notes too long", mutate: func(r *Request) {
			notes := strings.Repeat("a", domain.MaxNotesLength+1)
			r.Notes = &notes
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}

func TestIsCandidateStart(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		{StartTime: "09:00", EndTime: "12:30", IsActive: true},
	}

	tests := []struct {
		name  string
		start types.TimeString
		want  bool
	}{
		{name: "window start", start: "09:00", want: true},
		{name: "mid window slot", start: "11:00", want: true},
		{name: "off-grid time", start: "09:30", want: false},
		{name: "trailing partial slot", start: "12:00", want: false},
		{name: "outside window", start: "14:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isCandidateStart(rules, tt.start, domain.SlotDurationMinutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsCandidateStart_SkipsInvalidWindows(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		{StartTime: "17:00", EndTime: "09:00", IsActive: true},
	}

	got, err := isCandidateStart(rules, "17:00", domain.SlotDurationMinutes)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCountOverlappingBookings(t *testing.T) {
	live := func(start string) *domain.Booking {
		return &domain.Booking{StartTime: types.TimeString(start), DurationMinutes: 60, Status: domain.StatusPending}
	}

	t.Run("exact overlap counts", func(t *testing.T) {
		count, err := countOverlappingBookings("10:00", domain.SlotDurationMinutes, []*domain.Booking{live("10:00")})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("adjacent bookings do not count", func(t *testing.T) {
		count, err := countOverlappingBookings("10:00", domain.SlotDurationMinutes,
			[]*domain.Booking{live("09:00"), live("11:00")})
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("dead bookings do not count", func(t *testing.T) {
		cancelled := live("10:00")
		cancelled.Status = domain.StatusCancelled

		count, err := countOverlappingBookings("10:00", domain.SlotDurationMinutes, []*domain.Booking{cancelled})
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	assert.True(t, isDateInPast(now.AddDate(0, 0, -1), now))
	// Сегодняшний день - не прошлое, даже если время в запросе раньше текущего
	assert.False(t, isDateInPast(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(now.AddDate(0, 0, 1), now))
}
