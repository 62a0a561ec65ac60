package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда у вкладки нет сохраненной сессии
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrMalformedState возвращается, когда сохраненные данные не удалось разобрать
	ErrMalformedState = errors.New("session.repository: malformed persisted state")

	// ErrInvalidSessionID возвращается при пустом или слишком длинном идентификаторе
	ErrInvalidSessionID = errors.New("session.repository: invalid session id")

	// ErrStorage возвращается при ошибках хранилища
	ErrStorage = errors.New("session.repository: storage error")
)
