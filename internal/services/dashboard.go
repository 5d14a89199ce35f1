package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Renal37/smm-storefront/internal/database"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
	"github.com/Renal37/smm-storefront/internal/utils"
	"github.com/google/uuid"
)

const (
	OrderStatusPending       = "En attente"
	TransactionStatusDone    = "COMPLÉTÉ"
	TransactionStatusPending = "EN ATTENTE"

	maxTransactionIDAttempts = 3
)

// DashboardStorage - хранилище журнала: PostgreSQL или память процесса.
type DashboardStorage interface {
	CreatePurchase(ctx context.Context, order database.OrderDB, transaction database.TransactionDB, notification database.NotificationDB) error

	CreateDeposit(ctx context.Context, transaction database.TransactionDB, notification database.NotificationDB) error

	LoadDashboard(ctx context.Context, userID string, year int, limits database.Limits) (*database.DashboardDB, error)
}

// DashboardService ведёт журнал заказов, транзакций и уведомлений пользователя.
type DashboardService struct {
	storage DashboardStorage
	limits  database.Limits
	now     func() time.Time
	newTxID func() string
}

func NewDashboardService(storage DashboardStorage) *DashboardService {
	return &DashboardService{
		storage: storage,
		limits:  database.DefaultLimits,
		now:     time.Now,
		newTxID: randomTransactionID,
	}
}

// RecordOrder добавляет в журнал созданный заказ и списание за него.
func (d *DashboardService) RecordOrder(ctx context.Context, session models.Session, order models.OrderRequest) error {
	now := d.now()

	entry := database.OrderDB{
		ID:        uuid.NewString(),
		UserID:    session.Subject,
		Name:      order.Name,
		Amount:    order.Amount,
		Status:    OrderStatusPending,
		Cost:      order.Cost,
		Profit:    order.Profit,
		CreatedAt: now,
	}

	notification := database.NotificationDB{
		ID:        uuid.NewString(),
		UserID:    session.Subject,
		Title:     "Commande en cours",
		Message:   fmt.Sprintf("Votre commande « %s » est en attente de traitement.", order.Name),
		Type:      string(models.NotificationOrder),
		Unread:    true,
		CreatedAt: now,
	}

	return d.withTransactionID(func(id string) error {
		transaction := database.TransactionDB{
			ID:          id,
			UserID:      session.Subject,
			Description: "Achat " + order.Name,
			Amount:      order.Cost,
			Status:      TransactionStatusDone,
			Type:        string(models.TransactionPurchase),
			CreatedAt:   now,
		}
		return d.storage.CreatePurchase(ctx, entry, transaction, notification)
	})
}

// RecordDeposit добавляет в журнал заявку на пополнение.
func (d *DashboardService) RecordDeposit(ctx context.Context, session models.Session, deposit models.Deposit) error {
	now := d.now()

	notification := database.NotificationDB{
		ID:        uuid.NewString(),
		UserID:    session.Subject,
		Title:     "Dépôt en cours",
		Message:   fmt.Sprintf("Votre dépôt de %s est en cours de vérification.", pricing.LookupCurrency(pricing.DefaultCurrency).Format(deposit.Amount)),
		Type:      string(models.NotificationBilling),
		Unread:    true,
		CreatedAt: now,
	}

	return d.withTransactionID(func(id string) error {
		transaction := database.TransactionDB{
			ID:          id,
			UserID:      session.Subject,
			Description: "Dépôt " + strings.ToUpper(string(deposit.PaymentMethod)),
			Amount:      deposit.Amount,
			Status:      TransactionStatusPending,
			Type:        string(models.TransactionDeposit),
			CreatedAt:   now,
		}
		return d.storage.CreateDeposit(ctx, transaction, notification)
	})
}

// Get собирает дашборд; суммы форматируются в валюте сессии.
func (d *DashboardService) Get(ctx context.Context, session models.Session) (models.Dashboard, error) {
	now := d.now()

	stored, err := d.storage.LoadDashboard(ctx, session.Subject, now.Year(), d.limits)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to load dashboard: %w", err)
	}

	currency := pricing.LookupCurrency(session.Currency)

	dashboard := models.Dashboard{
		OrderCount:    stored.OrderCount,
		Orders:        make([]models.DashboardOrder, 0, len(stored.Orders)),
		Transactions:  make([]models.Transaction, 0, len(stored.Transactions)),
		Notifications: make([]models.Notification, 0, len(stored.Notifications)),
		Revenue:       make([]models.MonthlyRevenue, 12),
	}

	for _, o := range stored.Orders {
		dashboard.Orders = append(dashboard.Orders, models.DashboardOrder{
			ID:        o.ID,
			Name:      o.Name,
			Amount:    o.Amount,
			Status:    o.Status,
			Cost:      o.Cost,
			Profit:    o.Profit,
			CreatedAt: utils.RFC3339Date{Time: o.CreatedAt},
		})
	}

	for _, t := range stored.Transactions {
		sign := "+ "
		if t.Type == string(models.TransactionPurchase) {
			sign = "- "
		}
		dashboard.Transactions = append(dashboard.Transactions, models.Transaction{
			ID:        t.ID,
			Desc:      t.Description,
			Amount:    t.Amount,
			Display:   sign + currency.Format(t.Amount),
			Status:    t.Status,
			Type:      models.TransactionType(t.Type),
			CreatedAt: utils.RFC3339Date{Time: t.CreatedAt},
		})
	}

	for _, n := range stored.Notifications {
		dashboard.Notifications = append(dashboard.Notifications, models.Notification{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      models.NotificationType(n.Type),
			Unread:    n.Unread,
			CreatedAt: utils.RFC3339Date{Time: n.CreatedAt},
		})
	}

	for i := range dashboard.Revenue {
		dashboard.Revenue[i].Month = i + 1
	}
	for _, r := range stored.Revenue {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		dashboard.Revenue[r.Month-1].Revenue = r.Revenue
		dashboard.Revenue[r.Month-1].Profit = r.Profit
	}

	return dashboard, nil
}

// withTransactionID повторяет запись с новым идентификатором при коллизии.
func (d *DashboardService) withTransactionID(write func(id string) error) error {
	var err error
	for attempt := 0; attempt < maxTransactionIDAttempts; attempt++ {
		err = write(d.newTxID())
		if !errors.Is(err, database.ErrDuplicateTransaction) {
			return err
		}
	}
	return fmt.Errorf("failed to allocate transaction id: %w", err)
}

func randomTransactionID() string {
	return fmt.Sprintf("TX-%04d", rand.Intn(10000))
}
