package domain

// Slot derivation constants
const (
	// SlotDurationMinutes фиксированная длительность слота
	// Слоты всегда часовые; правило с окном, не кратным часу, теряет хвост
	SlotDurationMinutes = 60
)

// Business validation constants
const (
	MinDayOfWeek = 0
	MaxDayOfWeek = 6

	MaxCustomerNameLength       = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LiveStatuses список статусов, занимающих слот
// Используется конфликт-фильтром и частичным уникальным индексом в БД
var LiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список статусов, скрываемых из списков по умолчанию
// Завершённые бронирования остаются в истории, отменённые - только по запросу
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
