package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/models"
	"go.uber.org/zap"
)

const (
	servicesPath      = "/services"
	ordersPath        = "/orders"
	uploadProofPath   = "/orders/upload-proof"
	uploadReceiptPath = "/billing/upload-receipt"
	depositPath       = "/billing/deposit"
)

var (
	ErrMaintenance  = errors.New("backend is under maintenance")
	ErrUnauthorized = errors.New("session is not authenticated")
)

// StatusError - ответ backend-а с кодом вне 2xx.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend responded with status %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("backend responded with status %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrMaintenance:
		return e.Code == http.StatusServiceUnavailable
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	}
	return false
}

// Client обращается к backend API витрины.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient создает клиент для endpoint. timeout 0 оставляет таймауты транспорта по умолчанию.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// CreateOrderRequest - тело POST /orders.
type CreateOrderRequest struct {
	ServiceID     int                  `json:"service_id"`
	Quantity      int                  `json:"quantity"`
	Link          string               `json:"link"`
	TotalPrice    float64              `json:"total_price"`
	ProofURL      string               `json:"proof_url,omitempty"`
	CustomerName  string               `json:"customer_name"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// DepositRequest - тело POST /billing/deposit.
type DepositRequest struct {
	Amount        float64              `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Currency      string               `json:"currency"`
	ReceiptURL    string               `json:"receipt_url"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// FetchServices загружает каталог. Эндпоинт публичный.
func (c *Client) FetchServices(ctx context.Context) ([]models.RawService, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+servicesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var services []models.RawService
	if err := c.do(req, &services); err != nil {
		return nil, err
	}

	return services, nil
}

// CreateOrder регистрирует заказ на backend-е.
func (c *Client) CreateOrder(ctx context.Context, session models.Session, order CreateOrderRequest) error {
	req, err := c.newJSONRequest(ctx, ordersPath, session, order)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

// Deposit инициирует пополнение кошелька.
func (c *Client) Deposit(ctx context.Context, session models.Session, deposit DepositRequest) error {
	req, err := c.newJSONRequest(ctx, depositPath, session, deposit)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

func (c *Client) newJSONRequest(ctx context.Context, path string, session models.Session, body any) (*http.Request, error) {
	if session.Token == "" {
		return nil, ErrUnauthorized
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)

	return req, nil
}

// do выполняет запрос и, если out не nil, разбирает JSON-ответ в out.
func (c *Client) do(req *http.Request, out any) error {
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		statusErr := &StatusError{Code: res.StatusCode}

		var parsed errorResponse
		if json.Unmarshal(body, &parsed) == nil {
			statusErr.Detail = parsed.Detail
		}

		logger.Log.Debug("backend request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", res.StatusCode),
		)

		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", req.URL.Path, err)
	}

	return nil
}
