package session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("session: invalid input data")

	// ErrSessionNotFound возвращается, когда у вкладки нет активной сессии
	ErrSessionNotFound = errors.New("session: session not found")

	// ErrTourNotFound возвращается, когда тура нет в каталоге
	ErrTourNotFound = errors.New("session: tour not found")

	// ErrCatalogUnavailable возвращается, когда каталог туров не ответил
	ErrCatalogUnavailable = errors.New("session: tour catalog unavailable")

	// ErrWrongPhase возвращается, когда операция недоступна на текущем шаге
	ErrWrongPhase = errors.New("session: operation not allowed in current phase")

	// ErrInvalidDraft возвращается, когда черновик содержит некорректные значения
	ErrInvalidDraft = errors.New("session: invalid booking draft")

	// ErrDraftIncomplete возвращается, когда черновик не готов к оплате
	ErrDraftIncomplete = errors.New("session: booking draft is incomplete")

	// ErrStaleAttempt возвращается, когда колбэк относится к прошлой попытке
	ErrStaleAttempt = errors.New("session: stale booking attempt")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("session: internal error")
)
