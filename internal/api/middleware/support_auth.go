package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
)

const (
	// SupportTokenHeader заголовок с токеном сотрудника поддержки
	SupportTokenHeader = "X-Support-Token"

	msgSupportOnly = "требуется токен поддержки"
)

// SupportAuth пропускает только запросы с верным X-Support-Token
// Пустой token закрывает маршруты полностью
func SupportAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(SupportTokenHeader)
			if token == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, msgSupportOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
