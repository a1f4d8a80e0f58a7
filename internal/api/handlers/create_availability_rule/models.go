package create_availability_rule

// CreateRuleRequest HTTP request model
type CreateRuleRequest struct {
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`    // 0 (воскресенье) - 6 (суббота)
	SpecificDate *string `json:"specificDate,omitempty"` // "2025-10-15"
	StartTime    string  `json:"startTime"`              // "09:00"
	EndTime      string  `json:"endTime"`                // "17:00"
	IsActive     *bool   `json:"isActive,omitempty"`
}
