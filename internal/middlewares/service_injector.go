package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Renal37/smm-storefront/internal/models"
)

type key int

const (
	CatalogServiceKey key = iota
	CheckoutServiceKey
	BillingServiceKey
	DashboardServiceKey
	SessionServiceKey
	IdempotencyStoreKey
)

// Services - зависимости обработчиков, которые кладутся в контекст каждого запроса.
type Services struct {
	Catalog     models.CatalogService
	Checkout    models.CheckoutService
	Billing     models.BillingService
	Dashboard   models.DashboardService
	Session     models.SessionService
	Idempotency models.IdempotencyStore
}

func ServiceInjectorMiddleware(services Services) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), CatalogServiceKey, services.Catalog)
			ctx = context.WithValue(ctx, CheckoutServiceKey, services.Checkout)
			ctx = context.WithValue(ctx, BillingServiceKey, services.Billing)
			ctx = context.WithValue(ctx, DashboardServiceKey, services.Dashboard)
			ctx = context.WithValue(ctx, SessionServiceKey, services.Session)
			ctx = context.WithValue(ctx, IdempotencyStoreKey, services.Idempotency)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("service wasn't found in context by key %v", serviceKey))
		return nil
	}

	return &foundService
}
