package tourcatalog

import "errors"

var (
	// ErrTourNotFound возвращается, когда тура нет в каталоге
	ErrTourNotFound = errors.New("tour not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tourcatalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("tourcatalog client: invalid response")
)
