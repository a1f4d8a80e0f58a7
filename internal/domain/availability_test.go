package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitahub/VH-BookingService/pkg/types"
)

func TestAvailabilityRule_HasValidWindow(t *testing.T) {
	assert.True(t, (&AvailabilityRule{StartTime: "09:00", EndTime: "17:00"}).HasValidWindow())
	assert.False(t, (&AvailabilityRule{StartTime: "17:00", EndTime: "09:00"}).HasValidWindow())
	assert.False(t, (&AvailabilityRule{StartTime: "10:00", EndTime: "10:00"}).HasValidWindow())
}

func TestAvailabilityRule_AppliesTo(t *testing.T) {
	wednesday := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	thursday := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	dow := int(time.Wednesday)
	recurring := &AvailabilityRule{
		DayOfWeek:   &dow,
		StartTime:   types.TimeString("09:00"),
		EndTime:     types.TimeString("17:00"),
		IsRecurring: true,
		IsActive:    true,
	}

	assert.True(t, recurring.AppliesTo(wednesday))
	assert.False(t, recurring.AppliesTo(thursday))

	oneOff := &AvailabilityRule{
		SpecificDate: &wednesday,
		StartTime:    types.TimeString("09:00"),
		EndTime:      types.TimeString("12:00"),
		IsActive:     true,
	}

	assert.True(t, oneOff.AppliesTo(wednesday))
	assert.False(t, oneOff.AppliesTo(thursday))

	// Выключенное правило не даёт слотов ни на одну дату
	inactive := &AvailabilityRule{
		DayOfWeek:   &dow,
		IsRecurring: true,
		IsActive:    false,
	}
	assert.False(t, inactive.AppliesTo(wednesday))
}
