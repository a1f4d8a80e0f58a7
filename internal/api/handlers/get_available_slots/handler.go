package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vitahub/VH-BookingService/internal/api/handlers"
	getSlots "github.com/vitahub/VH-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPractitionerNotFound = "практиционер не найден"
	msgInvalidRequest       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-links/{code}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingCode := vars["code"]

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /booking-links/{code}/slots - Missing date: code=%s", bookingCode)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(bookingCode, dateStr)
	if err != nil {
		h.logger.Warn("GET /booking-links/{code}/slots - Invalid date format: code=%s, date=%s", bookingCode, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrPractitionerNotFound):
			h.logger.Warn("GET /booking-links/{code}/slots - Practitioner not found: code=%s", bookingCode)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /booking-links/{code}/slots - Invalid input: code=%s, error=%v", bookingCode, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /booking-links/{code}/slots - Failed to get slots: code=%s, error=%v", bookingCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /booking-links/{code}/slots - Slots retrieved successfully: code=%s, date=%s, slots_count=%d",
		bookingCode, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
