package get_available_slots

import (
	"time"

	"github.com/vitahub/VH-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BookingCode string    // Публичный код бронирования практиционера
	Date        time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time // Дата, на которую запрашивались слоты
	BookingCode string    // Публичный код практиционера
	OwnerID     int64     // ID практиционера
	Slots       []Slot    // Полный список слотов с признаком доступности
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время конца слота (например, "11:00")
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Свободен ли слот
}
