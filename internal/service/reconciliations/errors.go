package reconciliations

import "errors"

var (
	// ErrReconciliationNotFound возвращается, когда запись не найдена
	ErrReconciliationNotFound = errors.New("reconciliation not found")

	// ErrAlreadyResolved возвращается при повторном разборе записи
	ErrAlreadyResolved = errors.New("reconciliation already resolved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
