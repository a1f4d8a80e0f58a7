package delete_availability_rule

import "context"

type AvailabilityService interface {
	DeleteRule(ctx context.Context, ruleID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
