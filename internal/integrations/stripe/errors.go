package stripe

import "errors"

var (
	// ErrUnauthorized возвращается, когда Stripe отклонил секретный ключ
	ErrUnauthorized = errors.New("stripe client: unauthorized")

	// ErrNotLoaded возвращается при обращении к API до загрузки SDK
	ErrNotLoaded = errors.New("stripe client: sdk not loaded")

	// ErrPaymentNotSucceeded возвращается, когда PaymentIntent не в статусе succeeded
	ErrPaymentNotSucceeded = errors.New("stripe client: payment not succeeded")

	// ErrCardDeclined возвращается при отказе банка или ошибке карты
	ErrCardDeclined = errors.New("stripe client: card declined")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("stripe client: internal error")

	// ErrInvalidResponse возвращается, когда ответ Stripe не удалось разобрать
	ErrInvalidResponse = errors.New("stripe client: invalid response")
)
