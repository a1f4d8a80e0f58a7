package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза уведомлений
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrFunctionNotFound возвращается, когда шлюз не знает указанную функцию
	ErrFunctionNotFound = errors.New("notifier client: function not found")
)
