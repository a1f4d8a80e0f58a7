package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitahub/VH-BookingService/pkg/types"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: true},
		{name: "pending to completed skips confirmation", from: StatusPending, to: StatusCompleted, want: false},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, want: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, want: true},
		{name: "confirmed back to pending", from: StatusConfirmed, to: StatusPending, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusConfirmed, want: false},
		{name: "cancelled cannot be revived", from: StatusCancelled, to: StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsLive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsLive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsLive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsLive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsLive())
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestBooking_IsTerminal(t *testing.T) {
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusConfirmed}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsTerminal())
}

func TestBooking_EndTime(t *testing.T) {
	b := &Booking{StartTime: "10:00", DurationMinutes: SlotDurationMinutes}

	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), end)

	b = &Booking{StartTime: "23:30", DurationMinutes: SlotDurationMinutes}
	_, err = b.EndTime()
	assert.ErrorIs(t, err, types.ErrTimeOutOfRange)
}
