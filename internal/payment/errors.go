package payment

import "errors"

var (
	// ErrSDKLoadTimeout возвращается, когда SDK не загрузился за отведенное время
	ErrSDKLoadTimeout = errors.New("payment: sdk load timeout")

	// ErrSDKLoadFailed возвращается, когда загрузка SDK завершилась ошибкой
	ErrSDKLoadFailed = errors.New("payment: sdk load failed")

	// ErrLoadSuperseded возвращается ожидающим, если SDK был выгружен во время загрузки
	ErrLoadSuperseded = errors.New("payment: sdk load superseded")

	// ErrProviderNotConfigured возвращается для выключенного или неизвестного провайдера
	ErrProviderNotConfigured = errors.New("payment: provider not configured")

	// ErrWidgetNotMounted возвращается, когда в точке монтирования нет виджета
	ErrWidgetNotMounted = errors.New("payment: widget not mounted")
)
