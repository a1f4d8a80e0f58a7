package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vitahub/VH-BookingService/internal/api/handlers"
	createBooking "github.com/vitahub/VH-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgPractitionerNotFound = "практиционер не найден"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgNonWorkingDay        = "выбранная дата является нерабочим днём"
	msgInvalidBookingDate   = "некорректная дата бронирования"
	msgInvalidTimeSlot      = "некорректный временной слот"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-links/{code}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingCode := vars["code"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-links/{code}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(bookingCode)
	if err != nil {
		h.logger.Warn("POST /booking-links/{code}/bookings - Failed to parse request: code=%s, error=%v", bookingCode, err)
		if req.StartTime != "" && req.BookingDate != "" {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /booking-links/{code}/bookings - Slot not available: code=%s, date=%s, time=%s",
				bookingCode, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPractitionerNotFound):
			h.logger.Warn("POST /booking-links/{code}/bookings - Practitioner not found: code=%s", bookingCode)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, createBooking.ErrNonWorkingDay):
			h.logger.Warn("POST /booking-links/{code}/bookings - Non-working day: code=%s, date=%s", bookingCode, req.BookingDate)
			handlers.RespondBadRequest(w, msgNonWorkingDay)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /booking-links/{code}/bookings - Invalid booking date: code=%s, date=%s", bookingCode, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /booking-links/{code}/bookings - Invalid time slot: code=%s, time=%s", bookingCode, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /booking-links/{code}/bookings - Invalid input: code=%s, error=%v", bookingCode, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /booking-links/{code}/bookings - Failed to create booking: code=%s, error=%v", bookingCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /booking-links/{code}/bookings - Booking created successfully: booking_id=%d, reference=%s, code=%s",
		result.ID, result.Reference, bookingCode)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
