package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPayPal PaymentMethod = "paypal"
	PaymentCrypto PaymentMethod = "crypto"
	PaymentApple  PaymentMethod = "apple"
	PaymentOrange PaymentMethod = "orange"
	PaymentBankMA PaymentMethod = "bank_ma"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCard, PaymentPayPal, PaymentCrypto, PaymentApple, PaymentOrange, PaymentBankMA:
		return true
	}
	return false
}

// RequiresReceipt is true for manual rails where the customer must attach a payment proof.
func (p PaymentMethod) RequiresReceipt() bool {
	return p == PaymentOrange || p == PaymentBankMA
}

type CheckoutState string

const (
	StateIdle       CheckoutState = "idle"
	StateSubmitting CheckoutState = "submitting"
	StateSuccess    CheckoutState = "success"
)

// Receipt is an uploaded proof of an out-of-band payment.
type Receipt struct {
	FileName    string
	ContentType string
	Data        []byte
}

// OrderDraft is the state of an open order dialog.
type OrderDraft struct {
	Quantity      int
	Link          string
	CustomerName  string
	ResalePrice   string
	PaymentMethod PaymentMethod
	Receipt       *Receipt
}

// DraftPatch carries the fields a user changed. Nil fields are left as is.
type DraftPatch struct {
	Quantity      *FlexString    `json:"quantity,omitempty"`
	Link          *string        `json:"link,omitempty"`
	CustomerName  *string        `json:"customer_name,omitempty"`
	ResalePrice   *FlexString    `json:"resale_price,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
}

// OrderRequest is handed to the order-creation collaborator.
type OrderRequest struct {
	ServiceID     int           `json:"id"`
	Name          string        `json:"name"`
	Amount        string        `json:"amount"`
	Cost          float64       `json:"cost"`
	Profit        float64       `json:"profit"`
	Link          string        `json:"link"`
	ProofURL      string        `json:"proof_url,omitempty"`
	CustomerName  string        `json:"customer_name"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

type OrderResult struct {
	Cost     float64      `json:"cost"`
	Profit   float64      `json:"profit"`
	ProofURL string       `json:"proof_url,omitempty"`
	Order    OrderRequest `json:"order"`
	Notices  []Notice     `json:"notices,omitempty"`
}

type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message shown to the user in the dialog.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

type CheckoutView struct {
	ID               string        `json:"id"`
	ServiceID        int           `json:"service_id"`
	ServiceTitle     string        `json:"service_title"`
	State            CheckoutState `json:"state"`
	Quantity         int           `json:"quantity"`
	QuantityEditable bool          `json:"quantity_editable"`
	Min              int           `json:"min"`
	Max              int           `json:"max"`
	Link             string        `json:"link"`
	CustomerName     string        `json:"customer_name"`
	ResalePrice      string        `json:"resale_price"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	ReceiptName      string        `json:"receipt_name,omitempty"`
	Currency         string        `json:"currency"`
	Rate             float64       `json:"rate"`
	DisplayRate      string        `json:"display_rate"`
	TotalCost        float64       `json:"total_cost"`
	Profit           float64       `json:"profit"`
	CanSubmit        bool          `json:"can_submit"`
	Violations       []string      `json:"violations,omitempty"`
	Notices          []Notice      `json:"notices,omitempty"`
	Result           *OrderResult  `json:"result,omitempty"`
}

// FlexString принимает из JSON как строку, так и число: поля формы приходят в любом виде.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// FlexInt is a convenience for tests and handlers building patches from integers.
func FlexInt(v int) *FlexString {
	s := FlexString(strconv.Itoa(v))
	return &s
}
