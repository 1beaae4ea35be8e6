package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/client"
	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/logger"
	"salva-iguaba-api/internal/metrics"
	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreatePix(ctx context.Context, user *auth.User, req *dto.CreatePixPaymentRequest) (*dto.CreatePixPaymentResponse, error)
	Status(ctx context.Context, paymentID uint, customerUserID string) (*dto.PaymentStatusResponse, error)
	ListMine(ctx context.Context, customerUserID string) ([]*repository.CustomerPaymentRow, error)
	// HandleWebhook verifies the gateway signature, fetches the
	// authoritative payment object, and reconciles local payment and order
	// state. Unknown transaction ids are acknowledged, not errored, so the
	// gateway stops retrying.
	HandleWebhook(ctx context.Context, signatureHeader, requestID string, body []byte) error
}

type paymentServiceImpl struct {
	db            *gorm.DB
	mpClient      client.MercadoPagoClient
	webhookSecret string
	orderRepo     repository.OrderRepository
	paymentRepo   repository.PaymentRepository
}

func NewPaymentService(
	db *gorm.DB,
	mpClient client.MercadoPagoClient,
	webhookSecret string,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:            db,
		mpClient:      mpClient,
		webhookSecret: webhookSecret,
		orderRepo:     orderRepo,
		paymentRepo:   paymentRepo,
	}
}

func (s *paymentServiceImpl) CreatePix(ctx context.Context, user *auth.User, req *dto.CreatePixPaymentRequest) (*dto.CreatePixPaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, req.OrderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.CustomerUserID != user.ID {
		return nil, ErrForbidden
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Pedido #%d", order.ID)
	}

	payerEmail := user.Email
	if payerEmail == "" {
		payerEmail = "cliente@salvaiguaba.com"
	}
	payerFirst := user.GivenName
	if payerFirst == "" {
		payerFirst = "Cliente"
	}
	payerLast := user.FamilyName
	if payerLast == "" {
		payerLast = "Salva Iguaba"
	}

	gatewayPayment, err := s.mpClient.CreatePixPayment(ctx, &client.CreatePixPaymentRequest{
		Amount:      req.Amount,
		Description: description,
		PayerEmail:  payerEmail,
		PayerFirst:  payerFirst,
		PayerLast:   payerLast,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago create pix payment: %w", err)
	}

	payment := &model.Payment{
		OrderID:       order.ID,
		Amount:        req.Amount,
		PaymentMethod: "pix",
		Status:        model.PaymentStatusPending,
		TransactionID: strconv.FormatInt(gatewayPayment.ID, 10),
		PixQRCode:     gatewayPayment.PointOfInteraction.TransactionData.QRCodeBase64,
		PixCode:       gatewayPayment.PointOfInteraction.TransactionData.QRCode,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Older pending attempts are superseded so only this QR can
		// complete the order.
		if err := s.paymentRepo.SupersedePending(ctx, tx, order.ID); err != nil {
			return fmt.Errorf("supersede pending payments: %w", err)
		}

		return s.paymentRepo.Create(ctx, tx, payment)
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsByStatus.WithLabelValues(model.PaymentStatusPending).Inc()

	return &dto.CreatePixPaymentResponse{
		PaymentID:     payment.ID,
		MercadoPagoID: payment.TransactionID,
		QRCode:        payment.PixCode,
		QRCodeBase64:  payment.PixQRCode,
		Status:        payment.Status,
	}, nil
}

// Status is a local-only read: it reflects whatever the webhook last wrote,
// never a live gateway call. The frontend polls it until terminal status.
func (s *paymentServiceImpl) Status(ctx context.Context, paymentID uint, customerUserID string) (*dto.PaymentStatusResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}

	if payment.CustomerUserID != customerUserID {
		return nil, ErrForbidden
	}

	resp := &dto.PaymentStatusResponse{
		ID:            payment.ID,
		Status:        payment.Status,
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		CreatedAt:     payment.CreatedAt.Format(time.RFC3339),
	}
	if payment.CompletedAt != nil {
		resp.CompletedAt = payment.CompletedAt.Format(time.RFC3339)
	}

	return resp, nil
}

func (s *paymentServiceImpl) ListMine(ctx context.Context, customerUserID string) ([]*repository.CustomerPaymentRow, error) {
	return s.paymentRepo.ListByCustomer(ctx, customerUserID)
}

func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, signatureHeader, requestID string, body []byte) error {
	var event model.MercadoPagoWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	if event.Type != "payment" {
		return nil
	}
	if event.Data.ID == "" {
		return fmt.Errorf("%w: webhook carries no payment id", ErrInvalidInput)
	}

	if err := client.VerifyWebhookSignature(s.webhookSecret, signatureHeader, requestID, event.Data.ID); err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	log := logger.FromContext(ctx).With(zap.String("transaction_id", event.Data.ID))

	// The notification body is just a pointer; the gateway's payment object
	// is authoritative.
	gatewayPayment, err := s.mpClient.GetPayment(ctx, event.Data.ID)
	if err != nil {
		log.Warn("gateway payment lookup failed, acknowledging anyway", zap.Error(err))
		return nil
	}

	localStatus := mapGatewayStatus(gatewayPayment.Status)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.paymentRepo.UpdateStatusByTransactionID(ctx, tx, event.Data.ID, localStatus)
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		if !ok {
			metrics.WebhookUnknownTransactions.Inc()
			log.Warn("webhook for unknown transaction id")
			return nil
		}

		metrics.PaymentsByStatus.WithLabelValues(localStatus).Inc()

		if gatewayPayment.Status != "approved" {
			return nil
		}

		payment, err := s.paymentRepo.FindByTransactionID(ctx, event.Data.ID)
		if err != nil {
			return fmt.Errorf("load payment: %w", err)
		}

		confirmed := true
		_, err = s.orderRepo.TransitionStatus(ctx, tx, payment.OrderID,
			[]string{model.OrderStatusPending, model.OrderStatusConfirmed},
			model.OrderStatusConfirmed, &confirmed)
		if err != nil {
			return fmt.Errorf("confirm order: %w", err)
		}

		return nil
	})
}

// mapGatewayStatus folds Mercado Pago statuses onto the local enum:
// approved becomes completed, rejected/cancelled become failed, the rest
// pass through the pending/processing distinction.
func mapGatewayStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case "approved":
		return model.PaymentStatusCompleted
	case "rejected", "cancelled":
		return model.PaymentStatusFailed
	case "in_process", "authorized":
		return model.PaymentStatusProcessing
	case "refunded", "charged_back":
		return model.PaymentStatusRefunded
	default:
		return model.PaymentStatusPending
	}
}
