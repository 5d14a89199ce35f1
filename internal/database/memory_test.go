package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchase(userID string, i int, at time.Time) (OrderDB, TransactionDB, NotificationDB) {
	return OrderDB{
			ID:        fmt.Sprintf("order-%d", i),
			UserID:    userID,
			Name:      "Abonnés Instagram",
			Amount:    "1000 1000",
			Status:    "En attente",
			Cost:      10,
			Profit:    2.5,
			CreatedAt: at,
		}, TransactionDB{
			ID:        fmt.Sprintf("TX-%04d", i),
			UserID:    userID,
			Amount:    10,
			Status:    "COMPLÉTÉ",
			Type:      "purchase",
			CreatedAt: at,
		}, NotificationDB{
			ID:        fmt.Sprintf("n-%d", i),
			UserID:    userID,
			Title:     "Commande en cours",
			Unread:    true,
			CreatedAt: at,
		}
}

func TestMemoryStoreCapsAndOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	start := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		o, tx, n := purchase("alice", i, start.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.CreatePurchase(ctx, o, tx, n))
	}

	dashboard, err := store.LoadDashboard(ctx, "alice", 2025, DefaultLimits)
	require.NoError(t, err)

	assert.Equal(t, 25, dashboard.OrderCount)
	assert.Len(t, dashboard.Orders, 10)
	assert.Len(t, dashboard.Transactions, 20)
	assert.Len(t, dashboard.Notifications, 20)
	assert.Equal(t, "order-24", dashboard.Orders[0].ID)
	assert.Equal(t, "TX-0024", dashboard.Transactions[0].ID)

	require.Len(t, dashboard.Revenue, 1)
	assert.Equal(t, 3, dashboard.Revenue[0].Month)
	assert.InDelta(t, 25*12.5, dashboard.Revenue[0].Revenue, 1e-9)
	assert.InDelta(t, 25*2.5, dashboard.Revenue[0].Profit, 1e-9)
}

func TestMemoryStoreSeparatesUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	o, tx, n := purchase("alice", 1, time.Now())
	require.NoError(t, store.CreatePurchase(ctx, o, tx, n))

	dashboard, err := store.LoadDashboard(ctx, "bob", time.Now().Year(), DefaultLimits)
	require.NoError(t, err)
	assert.Zero(t, dashboard.OrderCount)
	assert.Empty(t, dashboard.Orders)
	assert.Empty(t, dashboard.Revenue)
}

func TestMemoryStoreDuplicateTransaction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	o, tx, n := purchase("alice", 7, time.Now())
	require.NoError(t, store.CreatePurchase(ctx, o, tx, n))

	err := store.CreateDeposit(ctx, TransactionDB{ID: "TX-0007", UserID: "alice"}, NotificationDB{ID: "n-x", UserID: "alice"})
	assert.ErrorIs(t, err, ErrDuplicateTransaction)

	dashboard, err := store.LoadDashboard(ctx, "alice", time.Now().Year(), DefaultLimits)
	require.NoError(t, err)
	assert.Len(t, dashboard.Transactions, 1)
	assert.Len(t, dashboard.Notifications, 1)
}

func TestMemoryStoreRevenueSkipsOtherYears(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	o, tx, n := purchase("alice", 1, time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC))
	require.NoError(t, store.CreatePurchase(ctx, o, tx, n))

	dashboard, err := store.LoadDashboard(ctx, "alice", 2025, DefaultLimits)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.OrderCount)
	assert.Empty(t, dashboard.Revenue)
}
