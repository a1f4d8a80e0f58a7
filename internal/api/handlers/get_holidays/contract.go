package get_holidays

import (
	"time"

	"github.com/vitahub/VH-BookingService/internal/calendar"
)

type HolidayCalendar interface {
	HolidaysForYear(year int) []calendar.Holiday
	Country() string
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
