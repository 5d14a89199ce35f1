package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
	"go.uber.org/zap"
)

// DefaultOrderLink подставляется, если ссылка цели не указана.
const DefaultOrderLink = "Internal Order"

type orderBackend interface {
	CreateOrder(ctx context.Context, session models.Session, order api.CreateOrderRequest) error
}

type orderLedger interface {
	RecordOrder(ctx context.Context, session models.Session, order models.OrderRequest) error
}

// OrderService отправляет заказ в backend и заносит его в журнал дашборда.
type OrderService struct {
	backend orderBackend
	ledger  orderLedger
}

func NewOrderService(backend orderBackend, ledger orderLedger) *OrderService {
	return &OrderService{backend: backend, ledger: ledger}
}

// CreateOrder возвращает ошибку только если заказ не принят backend-ом.
func (o *OrderService) CreateOrder(ctx context.Context, session models.Session, order models.OrderRequest) error {
	quantity := pricing.ParseQuantity(firstField(order.Amount))

	link := strings.TrimSpace(order.Link)
	if link == "" {
		link = DefaultOrderLink
	}

	request := api.CreateOrderRequest{
		ServiceID:     order.ServiceID,
		Quantity:      quantity,
		Link:          link,
		TotalPrice:    order.Cost,
		ProofURL:      order.ProofURL,
		CustomerName:  order.CustomerName,
		PaymentMethod: order.PaymentMethod,
	}

	if err := o.backend.CreateOrder(ctx, session, request); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if o.ledger != nil {
		if err := o.ledger.RecordOrder(ctx, session, order); err != nil {
			logger.Log.Error("failed to record order in dashboard",
				zap.String("user", session.Subject),
				zap.Int("serviceID", order.ServiceID),
				zap.Error(err),
			)
		}
	}

	return nil
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
