package bookingapi

import "errors"

var (
	// ErrRejected возвращается, когда API ответило не-2xx статусом
	ErrRejected = errors.New("bookingapi client: booking rejected")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("bookingapi client: internal error")

	// ErrInvalidResponse возвращается, когда ответ 2xx не удалось разобрать
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")
)
