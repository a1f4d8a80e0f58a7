package domain

import (
	"time"

	"github.com/vitahub/VH-BookingService/pkg/types"
)

// AvailabilityRule represents a time window during which a practitioner
// accepts bookings. A rule is either weekly-recurring (DayOfWeek set)
// or one-off for a single calendar date (SpecificDate set).
type AvailabilityRule struct {
	ID           int64
	OwnerID      int64
	DayOfWeek    *int       // 0=Sunday ... 6=Saturday; set only for recurring rules
	SpecificDate *time.Time // set only for one-off rules
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsRecurring  bool
	IsActive     bool // soft-disable instead of deletion

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidWindow returns true if the rule window is non-empty (start < end)
func (r *AvailabilityRule) HasValidWindow() bool {
	return r.StartTime.IsBefore(r.EndTime)
}

// AppliesTo returns true if the rule contributes slots on the given date.
// Inactive rules never apply.
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	if !r.IsActive {
		return false
	}

	if r.IsRecurring {
		return r.DayOfWeek != nil && int(date.Weekday()) == *r.DayOfWeek
	}

	if r.SpecificDate == nil {
		return false
	}
	y1, m1, d1 := r.SpecificDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
