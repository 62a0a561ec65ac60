package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TourBookingService/internal/service/session"
)

const (
	msgInvalidSession     = "некорректный идентификатор сессии"
	msgSessionNotFound    = "сессия бронирования не найдена"
	msgTourNotFound       = "тур не найден"
	msgCatalogUnavailable = "каталог туров недоступен"
	msgWrongPhase         = "действие недоступно на текущем шаге"
	msgInvalidDraft       = "некорректные данные бронирования"
	msgDraftIncomplete    = "заполните данные бронирования перед оплатой"
	msgStaleAttempt       = "сессия бронирования была начата заново"
)

// SessionErrorStatus HTTP статус и сообщение для ошибки контроллера сессии
// ok=false для внутренних ошибок; для ошибок черновика добавляется причина
func SessionErrorStatus(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, session.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidSession, true
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, msgSessionNotFound, true
	case errors.Is(err, session.ErrTourNotFound):
		return http.StatusNotFound, msgTourNotFound, true
	case errors.Is(err, session.ErrCatalogUnavailable):
		return http.StatusBadGateway, msgCatalogUnavailable, true
	case errors.Is(err, session.ErrWrongPhase):
		return http.StatusConflict, msgWrongPhase, true
	case errors.Is(err, session.ErrInvalidDraft):
		return http.StatusBadRequest, withCause(msgInvalidDraft, err, session.ErrInvalidDraft), true
	case errors.Is(err, session.ErrDraftIncomplete):
		return http.StatusUnprocessableEntity, withCause(msgDraftIncomplete, err, session.ErrDraftIncomplete), true
	case errors.Is(err, session.ErrStaleAttempt):
		return http.StatusGone, msgStaleAttempt, true
	default:
		return http.StatusInternalServerError, msgInternalError, false
	}
}

func withCause(message string, err, sentinel error) string {
	cause := strings.TrimPrefix(err.Error(), sentinel.Error())
	cause = strings.TrimPrefix(cause, ": ")
	if cause == "" {
		return message
	}
	return message + ": " + cause
}
