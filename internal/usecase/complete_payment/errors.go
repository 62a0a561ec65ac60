package complete_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_payment: invalid input data")

	// ErrSessionGone возвращается, когда сессии нет или колбэк относится к прошлой попытке
	ErrSessionGone = errors.New("complete_payment: session is gone")

	// ErrWrongPhase возвращается, когда сессия не на шаге оплаты
	ErrWrongPhase = errors.New("complete_payment: session is not in payment phase")

	// ErrWidgetNotMounted возвращается, когда виджет не отрисован или уже оплачен
	ErrWidgetNotMounted = errors.New("complete_payment: payment widget is not mounted")

	// ErrPaymentFailed возвращается, когда провайдер не списал деньги; бронирование не отправлялось
	ErrPaymentFailed = errors.New("complete_payment: payment capture failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_payment: internal error")
)
