package get_booking_by_reference

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vitahub/VH-BookingService/internal/api/handlers"
	"github.com/vitahub/VH-BookingService/internal/service/bookings"
)

const (
	msgMissingReference = "отсутствует код бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/by-reference/{reference}
// Публичная точка: код бронирования - непредсказуемый UUID из письма клиенту
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["reference"]

	if reference == "" {
		h.logger.Warn("GET /bookings/by-reference/{reference} - Missing reference")
		handlers.RespondBadRequest(w, msgMissingReference)
		return
	}

	booking, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/by-reference/{reference} - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/by-reference/{reference} - Failed to get booking: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/by-reference/{reference} - Booking retrieved successfully: reference=%s", reference)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
