package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/Renal37/smm-storefront/internal/idempotency"
	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyMiddleware отклоняет повторный запрос с тем же Idempotency-Key кодом 409.
// Запросы без заголовка пропускаются. Если хранилище недоступно, запрос тоже пропускается.
// Ключ освобождается, если обработчик ответил не 2xx, чтобы с ним можно было повторить отправку.
func IdempotencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, ok := GetSessionFromContext(w, r)
		if !ok {
			return
		}

		store := GetServiceFromContext[models.IdempotencyStore](w, r, IdempotencyStoreKey)
		if store == nil {
			return
		}

		key := idempotency.Key(session.Subject, header)
		seen, err := (*store).Seen(r.Context(), key)
		if err != nil {
			logger.Log.Warn("idempotency store unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if seen {
			WriteError(w, http.StatusConflict, "request with this Idempotency-Key was already processed")
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// 0 - обработчик ничего не записал, net/http ответит 200
		if status := ww.Status(); status == 0 || (status >= 200 && status < 300) {
			return
		}

		if err := (*store).Release(context.WithoutCancel(r.Context()), key); err != nil {
			logger.Log.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(err))
		}
	})
}
