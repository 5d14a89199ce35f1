package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
	"go.uber.org/zap"
)

// DepositCurrency - валюта, в которой backend принимает пополнения.
const DepositCurrency = "EUR"

var ErrInvalidAmount = errors.New("deposit amount must be positive")

type receiptUploader interface {
	UploadReceipt(ctx context.Context, session models.Session, receipt models.Receipt) (string, error)
}

type depositBackend interface {
	Deposit(ctx context.Context, session models.Session, deposit api.DepositRequest) error
}

type depositLedger interface {
	RecordDeposit(ctx context.Context, session models.Session, deposit models.Deposit) error
}

// BalanceService оформляет пополнение кошелька.
type BalanceService struct {
	uploader receiptUploader
	backend  depositBackend
	ledger   depositLedger
}

func NewBalanceService(uploader receiptUploader, backend depositBackend, ledger depositLedger) *BalanceService {
	return &BalanceService{uploader: uploader, backend: backend, ledger: ledger}
}

// Deposit загружает чек (для ручных способов оплаты он обязателен) и создаёт заявку.
// В отличие от заказа, ошибка загрузки чека здесь прерывает операцию.
func (b *BalanceService) Deposit(ctx context.Context, session models.Session, draft models.DepositDraft) (models.Deposit, error) {
	amount := pricing.ParseDecimal(draft.Amount)
	if amount <= 0 {
		return models.Deposit{}, ErrInvalidAmount
	}

	if !draft.PaymentMethod.Valid() {
		return models.Deposit{}, ErrInvalidPaymentMethod
	}

	if draft.PaymentMethod.RequiresReceipt() && draft.Receipt == nil {
		return models.Deposit{}, ErrReceiptRequired
	}

	deposit := models.Deposit{
		Amount:        amount,
		PaymentMethod: draft.PaymentMethod,
		Currency:      DepositCurrency,
	}

	if draft.Receipt != nil {
		url, err := b.uploader.UploadReceipt(ctx, session, *draft.Receipt)
		if err != nil {
			return models.Deposit{}, fmt.Errorf("failed to upload receipt: %w", err)
		}
		deposit.ReceiptURL = url
	}

	request := api.DepositRequest{
		Amount:        deposit.Amount,
		PaymentMethod: deposit.PaymentMethod,
		Currency:      deposit.Currency,
		ReceiptURL:    deposit.ReceiptURL,
	}

	if err := b.backend.Deposit(ctx, session, request); err != nil {
		return models.Deposit{}, fmt.Errorf("failed to create deposit: %w", err)
	}

	if b.ledger != nil {
		if err := b.ledger.RecordDeposit(ctx, session, deposit); err != nil {
			logger.Log.Error("failed to record deposit in dashboard", zap.String("user", session.Subject), zap.Error(err))
		}
	}

	return deposit, nil
}
