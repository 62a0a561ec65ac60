package reconciliation

import "errors"

var (
	// ErrReconciliationNotFound возвращается, когда запись не найдена
	ErrReconciliationNotFound = errors.New("reconciliation.repository: reconciliation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reconciliation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reconciliation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reconciliation.repository: failed to scan row")
)
