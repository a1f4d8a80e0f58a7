package create_booking

import (
	"time"

	"github.com/vitahub/VH-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BookingCode   string           // Публичный код бронирования практиционера
	CustomerName  string           // Имя клиента
	CustomerEmail string           // Email клиента (ключ идентичности клиента)
	CustomerPhone *string          // Телефон клиента (опционально)
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	Reference       string           // Публичный код бронирования для клиента
	OwnerID         int64            // ID практиционера
	CustomerName    string           // Имя клиента
	CustomerEmail   string           // Email клиента
	CustomerPhone   *string          // Телефон клиента
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
