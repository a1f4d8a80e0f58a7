package create_availability_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vitahub/VH-BookingService/internal/api/handlers"
	"github.com/vitahub/VH-BookingService/internal/api/middleware"
	"github.com/vitahub/VH-BookingService/internal/service/availability"
	"github.com/vitahub/VH-BookingService/internal/service/availability/models"
)

const (
	msgInvalidOwnerID     = "некорректный ID практиционера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidWindow      = "время начала должно быть раньше времени конца"
	msgInvalidSchedule    = "правило должно задавать либо день недели (0-6), либо конкретную дату"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerIDStr := vars["ownerId"]

	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /owners/{id}/availability - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /owners/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CreateRuleRequest{
		UserID:       userID,
		OwnerID:      ownerID,
		DayOfWeek:    req.DayOfWeek,
		SpecificDate: req.SpecificDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsActive:     req.IsActive,
	}

	result, err := h.service.CreateRule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /owners/{id}/availability - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidWindow):
			h.logger.Warn("POST /owners/{id}/availability - Invalid window: owner_id=%d", ownerID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availability.ErrInvalidSchedule):
			h.logger.Warn("POST /owners/{id}/availability - Invalid schedule: owner_id=%d", ownerID)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /owners/{id}/availability - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /owners/{id}/availability - Failed to create rule: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /owners/{id}/availability - Rule created successfully: rule_id=%d, owner_id=%d",
		result.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
