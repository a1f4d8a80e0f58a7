package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitahub/VH-BookingService/internal/domain"
	ruleRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/availability"
	"github.com/vitahub/VH-BookingService/internal/service/availability/models"
)

// Service сервис для работы с правилами доступности практиционеров
type Service struct {
	ruleRepo RuleRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса правил доступности
func NewService(ruleRepo RuleRepository, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// CreateRule создает новое правило доступности
// Правило задаёт либо день недели (недельное расписание),
// либо конкретную дату (разовое окно), но не оба сразу
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: creating rule for owner=%d by user=%d", req.OwnerID, req.UserID)

	// Практиционер управляет только собственным расписанием
	if req.OwnerID != req.UserID {
		s.logger.Warn("CreateRule: access denied for user=%d to owner=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("CreateRule: invalid input for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validateRule(rule); err != nil {
		s.logger.Warn("CreateRule: validation failed for owner=%d: %v", req.OwnerID, err)
		return nil, err
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: successfully created rule id=%d for owner=%d", created.ID, req.OwnerID)
	return models.FromDomainRule(created), nil
}

// ListRules получает все правила практиционера, включая выключенные
func (s *Service) ListRules(ctx context.Context, ownerID int64, userID int64) (*models.RuleListResponse, error) {
	s.logger.Info("ListRules: fetching rules for owner=%d by user=%d", ownerID, userID)

	if ownerID != userID {
		s.logger.Warn("ListRules: access denied for user=%d to owner=%d", userID, ownerID)
		return nil, ErrAccessDenied
	}

	rules, err := s.ruleRepo.GetAllByOwner(ctx, ownerID, false)
	if err != nil {
		s.logger.Error("ListRules: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRules: successfully fetched %d rules for owner=%d", len(rules), ownerID)
	return models.FromDomainRuleList(rules), nil
}

// UpdateRule обновляет правило доступности
func (s *Service) UpdateRule(ctx context.Context, ruleID int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("UpdateRule: updating rule id=%d by user=%d", ruleID, req.UserID)

	existing, err := s.getRule(ctx, ruleID, req.UserID, "UpdateRule")
	if err != nil {
		return nil, err
	}

	rule, err := req.ToDomainRule(existing.OwnerID)
	if err != nil {
		s.logger.Warn("UpdateRule: invalid input for rule id=%d: %v", ruleID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validateRule(rule); err != nil {
		s.logger.Warn("UpdateRule: validation failed for rule id=%d: %v", ruleID, err)
		return nil, err
	}

	updated, err := s.ruleRepo.Update(ctx, ruleID, rule)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("UpdateRule: rule id=%d not found during update", ruleID)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("UpdateRule: repository error for rule id=%d: %v", ruleID, err)
		return nil, fmt.Errorf("%w: UpdateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRule: successfully updated rule id=%d", ruleID)
	return models.FromDomainRule(updated), nil
}

// DeleteRule удаляет правило доступности
func (s *Service) DeleteRule(ctx context.Context, ruleID int64, userID int64) error {
	s.logger.Info("DeleteRule: deleting rule id=%d by user=%d", ruleID, userID)

	if _, err := s.getRule(ctx, ruleID, userID, "DeleteRule"); err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ctx, ruleID); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%d not found during delete", ruleID)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRule: successfully deleted rule id=%d", ruleID)
	return nil
}

// Вспомогательные методы

// getRule получает правило и проверяет, что оно принадлежит пользователю
func (s *Service) getRule(ctx context.Context, ruleID int64, userID int64, op string) (*domain.AvailabilityRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("%s: rule id=%d not found", op, ruleID)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("%s: repository error for rule id=%d: %v", op, ruleID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if rule.OwnerID != userID {
		s.logger.Warn("%s: access denied for user=%d to rule id=%d", op, userID, ruleID)
		return nil, ErrAccessDenied
	}

	return rule, nil
}

// validateRule проверяет инварианты правила:
// окно начинается раньше, чем заканчивается; задан ровно один из
// дня недели и конкретной даты; день недели в диапазоне 0-6
func (s *Service) validateRule(rule *domain.AvailabilityRule) error {
	if !rule.HasValidWindow() {
		return ErrInvalidWindow
	}

	hasDayOfWeek := rule.DayOfWeek != nil
	hasSpecificDate := rule.SpecificDate != nil

	if hasDayOfWeek == hasSpecificDate {
		return ErrInvalidSchedule
	}

	if hasDayOfWeek {
		if *rule.DayOfWeek < domain.MinDayOfWeek || *rule.DayOfWeek > domain.MaxDayOfWeek {
			return fmt.Errorf("%w: day of week must be between %d and %d",
				ErrInvalidSchedule, domain.MinDayOfWeek, domain.MaxDayOfWeek)
		}
	}

	return nil
}
