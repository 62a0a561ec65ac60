package notifier

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish возвращается, когда событие не удалось опубликовать
	ErrPublish = errors.New("notifier: failed to publish event")
)
