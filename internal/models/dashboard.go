package models

import "github.com/Renal37/smm-storefront/internal/utils"

type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionPurchase TransactionType = "purchase"
)

type NotificationType string

const (
	NotificationOrder   NotificationType = "order"
	NotificationBilling NotificationType = "billing"
)

type DashboardOrder struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Amount    string            `json:"amount"`
	Status    string            `json:"status"`
	Cost      float64           `json:"cost"`
	Profit    float64           `json:"profit"`
	CreatedAt utils.RFC3339Date `json:"date"`
}

type Transaction struct {
	ID        string            `json:"id"`
	Desc      string            `json:"desc"`
	Amount    float64           `json:"amount"`
	Display   string            `json:"display"`
	Status    string            `json:"status"`
	Type      TransactionType   `json:"type"`
	CreatedAt utils.RFC3339Date `json:"date"`
}

type Notification struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      NotificationType  `json:"type"`
	Unread    bool              `json:"unread"`
	CreatedAt utils.RFC3339Date `json:"created_at"`
}

type MonthlyRevenue struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

type Dashboard struct {
	OrderCount    int              `json:"order_count"`
	Orders        []DashboardOrder `json:"orders"`
	Transactions  []Transaction    `json:"transactions"`
	Notifications []Notification   `json:"notifications"`
	Revenue       []MonthlyRevenue `json:"revenue"`
}
