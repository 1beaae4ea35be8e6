package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"salva-iguaba-api/internal/config"
	"salva-iguaba-api/internal/model"

	"github.com/google/uuid"
)

// MercadoPagoClient covers the two calls the PIX flow needs: issuing a
// payment intent and fetching the authoritative payment object.
type MercadoPagoClient interface {
	CreatePixPayment(ctx context.Context, req *CreatePixPaymentRequest) (*model.MercadoPagoPayment, error)
	GetPayment(ctx context.Context, transactionID string) (*model.MercadoPagoPayment, error)
}

type CreatePixPaymentRequest struct {
	Amount      float64
	Description string
	PayerEmail  string
	PayerFirst  string
	PayerLast   string
}

type mercadoPagoClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	accessToken string
}

func NewMercadoPagoClient(cfg *config.MercadoPago) MercadoPagoClient {
	return &mercadoPagoClientImpl{
		httpClient: &http.Client{
			// A slow gateway must not stall order checkout.
			Timeout: 5 * time.Second,
		},
		baseApiURL:  cfg.BaseApiURL,
		accessToken: cfg.AccessToken,
	}
}

func (c *mercadoPagoClientImpl) CreatePixPayment(ctx context.Context, r *CreatePixPaymentRequest) (*model.MercadoPagoPayment, error) {
	payload := map[string]interface{}{
		"transaction_amount": r.Amount,
		"description":        r.Description,
		"payment_method_id":  "pix",
		"payer": map[string]string{
			"email":      r.PayerEmail,
			"first_name": r.PayerFirst,
			"last_name":  r.PayerLast,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseApiURL+"/v1/payments",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create payment request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	// Gateway-side dedup if the same create is retried.
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago create payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mercadopago error %d: %s", resp.StatusCode, string(b))
	}

	var result model.MercadoPagoPayment
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode mercadopago response: %w", err)
	}

	return &result, nil
}

func (c *mercadoPagoClientImpl) GetPayment(ctx context.Context, transactionID string) (*model.MercadoPagoPayment, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.baseApiURL, transactionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create get payment request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mercadopago error %d: %s", resp.StatusCode, string(b))
	}

	var result model.MercadoPagoPayment
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode mercadopago response: %w", err)
	}

	return &result, nil
}
