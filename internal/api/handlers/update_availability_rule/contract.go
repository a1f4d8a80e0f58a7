package update_availability_rule

import (
	"context"

	"github.com/vitahub/VH-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateRule(ctx context.Context, ruleID int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
