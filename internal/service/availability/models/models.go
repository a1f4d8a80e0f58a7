package models

import (
	"errors"
	"time"

	"github.com/vitahub/VH-BookingService/internal/domain"
	"github.com/vitahub/VH-BookingService/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format")
)

// Request модели

// CreateRuleRequest запрос на создание правила доступности
type CreateRuleRequest struct {
	UserID       int64   `json:"userId"`
	OwnerID      int64   `json:"ownerId"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`    // 0 (воскресенье) - 6 (суббота)
	SpecificDate *string `json:"specificDate,omitempty"` // "2025-10-15"
	StartTime    string  `json:"startTime"`              // "09:00"
	EndTime      string  `json:"endTime"`                // "17:00"
	IsActive     *bool   `json:"isActive,omitempty"`     // По умолчанию true
}

// UpdateRuleRequest запрос на обновление правила доступности
type UpdateRuleRequest struct {
	UserID       int64   `json:"userId"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// ToDomainRule конвертирует request в domain модель
func (r *CreateRuleRequest) ToDomainRule() (*domain.AvailabilityRule, error) {
	return toDomainRule(r.OwnerID, r.DayOfWeek, r.SpecificDate, r.StartTime, r.EndTime, r.IsActive)
}

// ToDomainRule конвертирует request в domain модель
// ownerID берётся из существующего правила
func (r *UpdateRuleRequest) ToDomainRule(ownerID int64) (*domain.AvailabilityRule, error) {
	return toDomainRule(ownerID, r.DayOfWeek, r.SpecificDate, r.StartTime, r.EndTime, r.IsActive)
}

func toDomainRule(ownerID int64, dayOfWeek *int, specificDate *string, startTime, endTime string, isActive *bool) (*domain.AvailabilityRule, error) {
	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	end, err := types.NewTimeStringFromString(endTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	rule := &domain.AvailabilityRule{
		OwnerID:     ownerID,
		DayOfWeek:   dayOfWeek,
		StartTime:   start,
		EndTime:     end,
		IsRecurring: dayOfWeek != nil,
		IsActive:    true,
	}

	if specificDate != nil {
		date, err := time.Parse(domain.DateFormat, *specificDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		rule.SpecificDate = &date
	}

	if isActive != nil {
		rule.IsActive = *isActive
	}

	return rule, nil
}

// Response модели

// RuleResponse ответ с данными правила доступности
type RuleResponse struct {
	ID           int64   `json:"id"`
	OwnerID      int64   `json:"ownerId"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"` // "2025-10-15"
	StartTime    string  `json:"startTime"`              // "09:00"
	EndTime      string  `json:"endTime"`                // "17:00"
	IsRecurring  bool    `json:"isRecurring"`
	IsActive     bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.AvailabilityRule) *RuleResponse {
	if rule == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:          rule.ID,
		OwnerID:     rule.OwnerID,
		DayOfWeek:   rule.DayOfWeek,
		StartTime:   rule.StartTime.String(),
		EndTime:     rule.EndTime.String(),
		IsRecurring: rule.IsRecurring,
		IsActive:    rule.IsActive,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
	}

	if rule.SpecificDate != nil {
		dateStr := rule.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &dateStr
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	if rules == nil {
		return &RuleListResponse{
			Rules: []RuleResponse{},
		}
	}

	resp := &RuleListResponse{
		Rules: make([]RuleResponse, len(rules)),
	}

	for i, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules[i] = *ruleResp
		}
	}

	return resp
}
