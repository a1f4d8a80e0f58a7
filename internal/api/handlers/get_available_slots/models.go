package get_available_slots

import (
	"time"

	"github.com/vitahub/VH-BookingService/internal/domain"
	getSlots "github.com/vitahub/VH-BookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date        string `json:"date"`
	BookingCode string `json:"bookingCode"`
	Slots       []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		}
	}

	return &SlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		BookingCode: resp.BookingCode,
		Slots:       slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(bookingCode string, dateStr string) (*getSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlots.Request{
		BookingCode: bookingCode,
		Date:        date,
	}, nil
}
