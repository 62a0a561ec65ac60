package kv

import "context"

// Store key-value хранилище состояния сессий (аналог sessionStorage вкладки)
type Store interface {
	// Get возвращает значение ключа или ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set записывает значение; запись завершена к моменту возврата
	Set(ctx context.Context, key, value string) error
	// Remove удаляет ключи; отсутствующие ключи не считаются ошибкой
	Remove(ctx context.Context, keys ...string) error
}
