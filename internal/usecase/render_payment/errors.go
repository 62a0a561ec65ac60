package render_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("render_payment: invalid input data")

	// ErrSessionGone возвращается, когда сессии нет или она сменила попытку за время ожидания
	ErrSessionGone = errors.New("render_payment: session is gone")

	// ErrWrongPhase возвращается, когда сессия не на шаге оплаты
	ErrWrongPhase = errors.New("render_payment: session is not in payment phase")

	// ErrMethodUnavailable возвращается, когда провайдер способа оплаты выключен
	ErrMethodUnavailable = errors.New("render_payment: payment method unavailable")

	// ErrSDKUnavailable возвращается, когда SDK не загрузился; можно повторить через retry
	ErrSDKUnavailable = errors.New("render_payment: payment sdk unavailable")

	// ErrRenderFailed возвращается, когда провайдер не смог создать заказ
	ErrRenderFailed = errors.New("render_payment: failed to render payment widget")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("render_payment: internal error")
)
