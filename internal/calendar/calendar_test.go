package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendar_NonWorkingDay(t *testing.T) {
	cal := New("DE")

	tests := []struct {
		name        string
		date        time.Time
		wantHoliday bool
		wantWeekend bool
		wantLabel   string
	}{
		{
			name: "regular weekday",
			date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), // среда
		},
		{
			name:        "saturday",
			date:        time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC),
			wantWeekend: true,
		},
		{
			name:        "sunday",
			date:        time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC),
			wantWeekend: true,
		},
		{
			name:        "holiday on a weekday",
			date:        time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC), // пятница
			wantHoliday: true,
			wantLabel:   "Day of Unity",
		},
		{
			name:        "holiday falling on a weekend",
			date:        time.Date(2026, 12, 26, 0, 0, 0, 0, time.UTC), // суббота
			wantHoliday: true,
			wantWeekend: true,
			wantLabel:   "Boxing Day",
		},
		{
			name:        "new year in any year",
			date:        time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			wantHoliday: true,
			wantLabel:   "New Year's Day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isHoliday, isWeekend, label := cal.NonWorkingDay(tt.date)
			assert.Equal(t, tt.wantHoliday, isHoliday)
			assert.Equal(t, tt.wantWeekend, isWeekend)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestCalendar_IsWorkingDay(t *testing.T) {
	cal := New("DE")

	assert.True(t, cal.IsWorkingDay(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cal.IsWorkingDay(time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC))) // суббота
	assert.False(t, cal.IsWorkingDay(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))   // Labour Day
}

func TestCalendar_HolidaysForYear(t *testing.T) {
	cal := New("DE")

	holidays := cal.HolidaysForYear(2025)
	assert.Len(t, holidays, 6)

	for _, h := range holidays {
		assert.Equal(t, 2025, h.Date.Year())
		assert.Equal(t, "DE", h.Country)
		assert.NotEmpty(t, h.Name)
	}
}

func TestCalendar_Country(t *testing.T) {
	assert.Equal(t, "AT", New("AT").Country())
}
