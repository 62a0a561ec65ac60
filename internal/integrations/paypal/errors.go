package paypal

import "errors"

var (
	// ErrUnauthorized возвращается, когда PayPal не выдал токен
	ErrUnauthorized = errors.New("paypal client: unauthorized")

	// ErrNotLoaded возвращается при обращении к API до загрузки SDK
	ErrNotLoaded = errors.New("paypal client: sdk not loaded")

	// ErrCaptureFailed возвращается, когда списание отклонено или не завершено
	ErrCaptureFailed = errors.New("paypal client: capture failed")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("paypal client: internal error")

	// ErrInvalidResponse возвращается, когда ответ PayPal не удалось разобрать
	ErrInvalidResponse = errors.New("paypal client: invalid response")
)
