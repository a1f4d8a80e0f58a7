package list_availability_rules

import (
	"context"

	"github.com/vitahub/VH-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListRules(ctx context.Context, ownerID int64, userID int64) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
