package database

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore - журнал дашборда в памяти процесса, используется без DATABASE_URI.
type MemoryStore struct {
	mu            sync.RWMutex
	orders        map[string][]OrderDB
	transactions  map[string][]TransactionDB
	notifications map[string][]NotificationDB
	txIDs         map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:        make(map[string][]OrderDB),
		transactions:  make(map[string][]TransactionDB),
		notifications: make(map[string][]NotificationDB),
		txIDs:         make(map[string]struct{}),
	}
}

func (m *MemoryStore) CreatePurchase(_ context.Context, order OrderDB, transaction TransactionDB, notification NotificationDB) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.txIDs[transaction.ID]; ok {
		return ErrDuplicateTransaction
	}

	m.orders[order.UserID] = append(m.orders[order.UserID], order)
	m.addTransaction(transaction)
	m.notifications[notification.UserID] = append(m.notifications[notification.UserID], notification)

	return nil
}

func (m *MemoryStore) CreateDeposit(_ context.Context, transaction TransactionDB, notification NotificationDB) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.txIDs[transaction.ID]; ok {
		return ErrDuplicateTransaction
	}

	m.addTransaction(transaction)
	m.notifications[notification.UserID] = append(m.notifications[notification.UserID], notification)

	return nil
}

func (m *MemoryStore) LoadDashboard(_ context.Context, userID string, year int, limits Limits) (*DashboardDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := m.orders[userID]

	result := &DashboardDB{
		OrderCount:    len(orders),
		Orders:        latest(orders, limits.Orders, func(o OrderDB) int64 { return o.CreatedAt.UnixNano() }),
		Transactions:  latest(m.transactions[userID], limits.Transactions, func(t TransactionDB) int64 { return t.CreatedAt.UnixNano() }),
		Notifications: latest(m.notifications[userID], limits.Notifications, func(n NotificationDB) int64 { return n.CreatedAt.UnixNano() }),
	}

	byMonth := make(map[int]*MonthlyRevenueDB)
	for _, o := range orders {
		if o.CreatedAt.Year() != year {
			continue
		}
		month := int(o.CreatedAt.Month())
		item, ok := byMonth[month]
		if !ok {
			item = &MonthlyRevenueDB{Month: month}
			byMonth[month] = item
		}
		item.Revenue += o.Cost + o.Profit
		item.Profit += o.Profit
	}
	for _, item := range byMonth {
		result.Revenue = append(result.Revenue, *item)
	}
	sort.Slice(result.Revenue, func(i, j int) bool { return result.Revenue[i].Month < result.Revenue[j].Month })

	return result, nil
}

func (m *MemoryStore) addTransaction(t TransactionDB) {
	m.txIDs[t.ID] = struct{}{}
	m.transactions[t.UserID] = append(m.transactions[t.UserID], t)
}

// latest возвращает не более limit записей, новые первыми.
func latest[T any](items []T, limit int, key func(T) int64) []T {
	result := make([]T, len(items))
	for i := range items {
		result[len(items)-1-i] = items[i]
	}
	sort.SliceStable(result, func(i, j int) bool { return key(result[i]) > key(result[j]) })

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
