package notifier

// BookingPayload данные бронирования для шлюза уведомлений
type BookingPayload struct {
	Reference        string  `json:"reference"`
	OwnerID          int64   `json:"owner_id"`
	PractitionerName string  `json:"practitioner_name"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	BookingDate      string  `json:"booking_date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Status           string  `json:"status"`
	Reason           *string `json:"reason,omitempty"`
}

// ErrorResponse модель ошибки от шлюза уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
