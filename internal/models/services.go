package models

import "context"

//go:generate mockgen -destination=mocks/mock_catalog.go . CatalogService
type CatalogService interface {
	List(ctx context.Context, filter CatalogFilter) ([]Service, error)

	Get(ctx context.Context, id int) (Service, error)
}

//go:generate mockgen -destination=mocks/mock_checkout.go . CheckoutService
type CheckoutService interface {
	Open(ctx context.Context, session Session, serviceID int, currency string) (CheckoutView, error)

	View(session Session, id string) (CheckoutView, error)

	Update(session Session, id string, patch DraftPatch) (CheckoutView, error)

	AttachReceipt(session Session, id string, receipt Receipt) (CheckoutView, error)

	Submit(ctx context.Context, session Session, id string) (OrderResult, error)

	Close(session Session, id string) error
}

//go:generate mockgen -destination=mocks/mock_billing.go . BillingService
type BillingService interface {
	Deposit(ctx context.Context, session Session, draft DepositDraft) (Deposit, error)
}

//go:generate mockgen -destination=mocks/mock_dashboard.go . DashboardService
type DashboardService interface {
	Get(ctx context.Context, session Session) (Dashboard, error)
}

//go:generate mockgen -destination=mocks/mock_session.go . SessionService
type SessionService interface {
	Resolve(token string) (Session, error)
}

//go:generate mockgen -destination=mocks/mock_idempotency.go . IdempotencyStore
type IdempotencyStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
