package update_availability_rule

// UpdateRuleRequest HTTP request model
type UpdateRuleRequest struct {
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	IsActive     *bool   `json:"isActive,omitempty"`
}
