package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReceiptUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeReceiptUploader) UploadReceipt(_ context.Context, _ models.Session, _ models.Receipt) (string, error) {
	f.calls++
	return f.url, f.err
}

type fakeDepositBackend struct {
	requests []api.DepositRequest
	err      error
}

func (f *fakeDepositBackend) Deposit(_ context.Context, _ models.Session, deposit api.DepositRequest) error {
	f.requests = append(f.requests, deposit)
	return f.err
}

type fakeDepositLedger struct {
	deposits []models.Deposit
}

func (f *fakeDepositLedger) RecordDeposit(_ context.Context, _ models.Session, deposit models.Deposit) error {
	f.deposits = append(f.deposits, deposit)
	return nil
}

func TestBalanceServiceDeposit(t *testing.T) {
	tests := []struct {
		name        string
		draft       models.DepositDraft
		uploadErr   error
		wantErr     error
		wantUploads int
		wantPosted  bool
	}{
		{
			name:       "card without receipt",
			draft:      models.DepositDraft{Amount: "50", PaymentMethod: models.PaymentCard},
			wantPosted: true,
		},
		{
			name:        "manual rail with receipt",
			draft:       models.DepositDraft{Amount: "20,5", PaymentMethod: models.PaymentBankMA, Receipt: &models.Receipt{FileName: "r.jpg", Data: []byte{1}}},
			wantUploads: 1,
			wantPosted:  true,
		},
		{
			name:    "manual rail without receipt",
			draft:   models.DepositDraft{Amount: "20", PaymentMethod: models.PaymentOrange},
			wantErr: ErrReceiptRequired,
		},
		{
			name:    "zero amount",
			draft:   models.DepositDraft{Amount: "0", PaymentMethod: models.PaymentCard},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unparseable amount",
			draft:   models.DepositDraft{Amount: "beaucoup", PaymentMethod: models.PaymentCard},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown method",
			draft:   models.DepositDraft{Amount: "10", PaymentMethod: "cash"},
			wantErr: ErrInvalidPaymentMethod,
		},
		{
			name:        "upload failure is fatal",
			draft:       models.DepositDraft{Amount: "10", PaymentMethod: models.PaymentOrange, Receipt: &models.Receipt{Data: []byte{1}}},
			uploadErr:   api.ErrEmptyUpload,
			wantErr:     api.ErrEmptyUpload,
			wantUploads: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &fakeReceiptUploader{url: "https://cdn.example.com/r.jpg", err: tt.uploadErr}
			backend := &fakeDepositBackend{}
			ledger := &fakeDepositLedger{}
			service := NewBalanceService(uploader, backend, ledger)

			deposit, err := service.Deposit(context.Background(), testSession, tt.draft)

			assert.Equal(t, tt.wantUploads, uploader.calls)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, backend.requests)
				assert.Empty(t, ledger.deposits)
				return
			}

			require.NoError(t, err)
			require.Len(t, backend.requests, 1)
			assert.Equal(t, DepositCurrency, backend.requests[0].Currency)
			assert.Equal(t, deposit.Amount, backend.requests[0].Amount)
			assert.Equal(t, []models.Deposit{deposit}, ledger.deposits)

			if tt.draft.Receipt != nil {
				assert.Equal(t, "https://cdn.example.com/r.jpg", deposit.ReceiptURL)
			}
		})
	}
}

func TestBalanceServiceBackendFailure(t *testing.T) {
	backend := &fakeDepositBackend{err: errors.New("boom")}
	ledger := &fakeDepositLedger{}
	service := NewBalanceService(&fakeReceiptUploader{}, backend, ledger)

	_, err := service.Deposit(context.Background(), testSession, models.DepositDraft{Amount: "10", PaymentMethod: models.PaymentPayPal})
	assert.Error(t, err)
	assert.Empty(t, ledger.deposits)
}
