package models

// DepositDraft - данные формы пополнения кошелька.
type DepositDraft struct {
	Amount        string
	PaymentMethod PaymentMethod
	Receipt       *Receipt
}

// Deposit - принятая backend-ом заявка на пополнение.
type Deposit struct {
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Currency      string        `json:"currency"`
	ReceiptURL    string        `json:"receipt_url,omitempty"`
}
