package kv

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ отсутствует в хранилище
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrStorage возвращается при ошибках работы с хранилищем
	ErrStorage = errors.New("kv: storage error")
)
