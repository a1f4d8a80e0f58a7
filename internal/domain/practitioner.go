package domain

import "time"

// Practitioner represents a franchise owner who configures availability
// and receives bookings. Resolved by customers through a shareable booking code.
type Practitioner struct {
	OwnerID     int64
	BookingCode string
	DisplayName string
	Email       string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
