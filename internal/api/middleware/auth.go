package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
)

const bearerPrefix = "Bearer "

// InternalAuth защищает служебные эндпоинты статическим секретом
// Ожидает заголовок Authorization: Bearer <secret>
func InternalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				handlers.RespondError(w, http.StatusUnauthorized, "требуется авторизация")
				return
			}

			token := strings.TrimPrefix(header, bearerPrefix)
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				handlers.RespondError(w, http.StatusUnauthorized, "требуется авторизация")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
