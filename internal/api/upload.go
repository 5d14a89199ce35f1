package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/Renal37/smm-storefront/internal/models"
)

var ErrEmptyUpload = errors.New("upload response has no url")

type proofResponse struct {
	URL string `json:"url"`
}

type receiptResponse struct {
	ReceiptURL string `json:"receipt_url"`
}

// UploadProof отправляет подтверждение оплаты заказа и возвращает его URL.
func (c *Client) UploadProof(ctx context.Context, session models.Session, receipt models.Receipt) (string, error) {
	var res proofResponse
	if err := c.upload(ctx, uploadProofPath, session, receipt, &res); err != nil {
		return "", err
	}

	if res.URL == "" {
		return "", ErrEmptyUpload
	}

	return res.URL, nil
}

// UploadReceipt отправляет чек пополнения кошелька и возвращает его URL.
func (c *Client) UploadReceipt(ctx context.Context, session models.Session, receipt models.Receipt) (string, error) {
	var res receiptResponse
	if err := c.upload(ctx, uploadReceiptPath, session, receipt, &res); err != nil {
		return "", err
	}

	if res.ReceiptURL == "" {
		return "", ErrEmptyUpload
	}

	return res.ReceiptURL, nil
}

func (c *Client) upload(ctx context.Context, path string, session models.Session, receipt models.Receipt, out any) error {
	if session.Token == "" {
		return ErrUnauthorized
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, receiptFileName(receipt)))
	contentType := receipt.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(receipt.Data); err != nil {
		return fmt.Errorf("failed to write form file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+session.Token)

	return c.do(req, out)
}

func receiptFileName(receipt models.Receipt) string {
	if receipt.FileName == "" {
		return "receipt"
	}
	return receipt.FileName
}
