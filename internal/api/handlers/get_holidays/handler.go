package get_holidays

import (
	"net/http"
	"strconv"

	"github.com/vitahub/VH-BookingService/internal/api/handlers"
	"github.com/vitahub/VH-BookingService/internal/calendar"
)

const (
	msgInvalidYear = "некорректный год"
)

// HolidaysResponse HTTP response model
type HolidaysResponse struct {
	Year     int                `json:"year"`
	Country  string             `json:"country"`
	Holidays []calendar.Holiday `json:"holidays"`
}

type Handler struct {
	calendar     HolidayCalendar
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(cal HolidayCalendar, logger Logger) *Handler {
	return &Handler{
		calendar:     cal,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/holidays
// Query params: year (опционально, по умолчанию текущий год)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	year := h.timeProvider.Now().Year()

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 1 {
			h.logger.Warn("GET /holidays - Invalid year: %s", yearStr)
			handlers.RespondBadRequest(w, msgInvalidYear)
			return
		}
		year = parsed
	}

	response := &HolidaysResponse{
		Year:     year,
		Country:  h.calendar.Country(),
		Holidays: h.calendar.HolidaysForYear(year),
	}

	h.logger.Info("GET /holidays - Holidays retrieved successfully: year=%d, count=%d", year, len(response.Holidays))
	handlers.RespondJSON(w, http.StatusOK, response)
}
