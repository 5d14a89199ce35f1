package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/services"
)

// sessionFieldType определяет тип для ключа, используемого для хранения сессии в контексте.
type sessionFieldType string

const sessionField sessionFieldType = "sessionField"

// AuthMiddlewareConfig представляет конфигурацию middleware для аутентификации.
type AuthMiddlewareConfig struct {
	excludePaths []string
}

func AuthMiddleware() *AuthMiddlewareConfig {
	return &AuthMiddlewareConfig{}
}

// WithExcludedPaths устанавливает пути, которые будут исключены из проверки аутентификации.
func (a *AuthMiddlewareConfig) WithExcludedPaths(paths ...string) *AuthMiddlewareConfig {
	a.excludePaths = paths
	return a
}

// Middleware извлекает сессию из заголовка Authorization и кладёт её в контекст.
func (a *AuthMiddlewareConfig) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, path := range a.excludePaths {
			if strings.HasPrefix(r.URL.Path, path) {
				next.ServeHTTP(w, r)
				return
			}
		}

		sessionService := GetServiceFromContext[models.SessionService](w, r, SessionServiceKey)
		if sessionService == nil {
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			WriteError(w, http.StatusUnauthorized, "bearer token is empty")
			return
		}

		session, err := (*sessionService).Resolve(tokenString)
		if err != nil {
			if errors.Is(err, services.ErrTokenIsExpired) {
				WriteError(w, http.StatusUnauthorized, "token is expired")
				return
			}

			WriteError(w, http.StatusUnauthorized, "token is invalid")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionField, session)
}

// GetSessionFromContext извлекает сессию из контекста запроса.
// В случае ошибки отвечает HTTP 401.
func GetSessionFromContext(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	session, ok := r.Context().Value(sessionField).(models.Session)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "session is missing")
	}

	return session, ok
}
