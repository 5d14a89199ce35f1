package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateTransaction = errors.New("транзакция с таким идентификатором уже существует")

// Limits - сколько последних записей каждого вида возвращать в дашборд.
type Limits struct {
	Orders        int
	Transactions  int
	Notifications int
}

var DefaultLimits = Limits{Orders: 10, Transactions: 20, Notifications: 20}

type OrderDB struct {
	ID        string
	UserID    string
	Name      string
	Amount    string
	Status    string
	Cost      float64
	Profit    float64
	CreatedAt time.Time
}

type TransactionDB struct {
	ID          string
	UserID      string
	Description string
	Amount      float64
	Status      string
	Type        string
	CreatedAt   time.Time
}

type NotificationDB struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      string
	Unread    bool
	CreatedAt time.Time
}

type MonthlyRevenueDB struct {
	Month   int
	Revenue float64
	Profit  float64
}

// DashboardDB - срез журнала пользователя, новые записи первыми.
type DashboardDB struct {
	OrderCount    int
	Orders        []OrderDB
	Transactions  []TransactionDB
	Notifications []NotificationDB
	Revenue       []MonthlyRevenueDB
}

// CreatePurchase записывает заказ, списание и уведомление одной транзакцией.
func (d *Database) CreatePurchase(ctx context.Context, order OrderDB, transaction TransactionDB, notification NotificationDB) error {
	return pgx.BeginFunc(ctx, d.db, func(tx pgx.Tx) error {
		if err := insertOrder(ctx, tx, order); err != nil {
			return err
		}
		if err := insertTransaction(ctx, tx, transaction); err != nil {
			return err
		}
		return insertNotification(ctx, tx, notification)
	})
}

// CreateDeposit записывает пополнение и уведомление о нём.
func (d *Database) CreateDeposit(ctx context.Context, transaction TransactionDB, notification NotificationDB) error {
	return pgx.BeginFunc(ctx, d.db, func(tx pgx.Tx) error {
		if err := insertTransaction(ctx, tx, transaction); err != nil {
			return err
		}
		return insertNotification(ctx, tx, notification)
	})
}

func (d *Database) LoadDashboard(ctx context.Context, userID string, year int, limits Limits) (*DashboardDB, error) {
	result := &DashboardDB{}

	if err := d.db.QueryRow(ctx, CountOrdersQuery, userID).Scan(&result.OrderCount); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта заказов: %w", err)
	}

	var err error
	if result.Orders, err = d.findRecentOrders(ctx, userID, limits.Orders); err != nil {
		return nil, err
	}
	if result.Transactions, err = d.findRecentTransactions(ctx, userID, limits.Transactions); err != nil {
		return nil, err
	}
	if result.Notifications, err = d.findRecentNotifications(ctx, userID, limits.Notifications); err != nil {
		return nil, err
	}
	if result.Revenue, err = d.findMonthlyRevenue(ctx, userID, year); err != nil {
		return nil, err
	}

	return result, nil
}

const (
	InsertTransactionQuery = `
		INSERT INTO
			transactions (id, user_id, description, amount, status, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	SelectRecentTransactionsQuery = `
		SELECT
			id,
			user_id,
			description,
			amount,
			status,
			type,
			created_at
		FROM
			transactions
		WHERE
			user_id = $1
		ORDER BY
			created_at DESC
		LIMIT $2
	`
	InsertNotificationQuery = `
		INSERT INTO
			notifications (id, user_id, title, message, type, unread, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	SelectRecentNotificationsQuery = `
		SELECT
			id,
			user_id,
			title,
			message,
			type,
			unread,
			created_at
		FROM
			notifications
		WHERE
			user_id = $1
		ORDER BY
			created_at DESC
		LIMIT $2
	`
)

func insertTransaction(ctx context.Context, db DBExecutor, t TransactionDB) error {
	_, err := db.Exec(ctx, InsertTransactionQuery, t.ID, t.UserID, t.Description, t.Amount, t.Status, t.Type, t.CreatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("ошибка создания транзакции: %w", err)
	}

	return nil
}

func insertNotification(ctx context.Context, db DBExecutor, n NotificationDB) error {
	_, err := db.Exec(ctx, InsertNotificationQuery, n.ID, n.UserID, n.Title, n.Message, n.Type, n.Unread, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}

	return nil
}

func (d *Database) findRecentTransactions(ctx context.Context, userID string, limit int) ([]TransactionDB, error) {
	rows, err := d.db.Query(ctx, SelectRecentTransactionsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска транзакций: %w", err)
	}
	defer rows.Close()

	var result []TransactionDB
	for rows.Next() {
		var item TransactionDB
		if err := rows.Scan(&item.ID, &item.UserID, &item.Description, &item.Amount, &item.Status, &item.Type, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с транзакцией: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

func (d *Database) findRecentNotifications(ctx context.Context, userID string, limit int) ([]NotificationDB, error) {
	rows, err := d.db.Query(ctx, SelectRecentNotificationsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска уведомлений: %w", err)
	}
	defer rows.Close()

	var result []NotificationDB
	for rows.Next() {
		var item NotificationDB
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Message, &item.Type, &item.Unread, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с уведомлением: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}
