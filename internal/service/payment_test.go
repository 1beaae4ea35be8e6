package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/client"
	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWebhookSecret = "test-webhook-secret"

type fakeMercadoPago struct {
	created    *model.MercadoPagoPayment
	fetched    *model.MercadoPagoPayment
	getErr     error
	getCalls   int
	lastCreate *client.CreatePixPaymentRequest
}

func (f *fakeMercadoPago) CreatePixPayment(_ context.Context, req *client.CreatePixPaymentRequest) (*model.MercadoPagoPayment, error) {
	f.lastCreate = req
	return f.created, nil
}

func (f *fakeMercadoPago) GetPayment(_ context.Context, _ string) (*model.MercadoPagoPayment, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.fetched, nil
}

func newPaymentService(db *gorm.DB, mp client.MercadoPagoClient) PaymentService {
	return NewPaymentService(db, mp, testWebhookSecret,
		repository.NewOrderRepository(db), repository.NewPaymentRepository(db))
}

func seedOrder(t *testing.T, db *gorm.DB, bagID uint, customerUserID, pickupCode string) *model.Order {
	t.Helper()

	order := &model.Order{
		BagID:          bagID,
		CustomerUserID: customerUserID,
		Quantity:       1,
		TotalPrice:     15.0,
		Status:         model.OrderStatusPending,
		PaymentMethod:  "pix",
		PickupCode:     pickupCode,
	}
	require.NoError(t, db.Create(order).Error)

	return order
}

func signedWebhook(requestID, dataID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(manifest))
	return fmt.Sprintf("ts=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func webhookBody(dataID string) []byte {
	return []byte(fmt.Sprintf(`{"type":"payment","data":{"id":%q}}`, dataID))
}

func TestCreatePixPayment(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	bag := seedBag(t, db, establishment.ID, 3, 15.0)
	order := seedOrder(t, db, bag.ID, "customer-1", "AAAAA1")

	mp := &fakeMercadoPago{
		created: &model.MercadoPagoPayment{
			ID:     12345,
			Status: "pending",
			PointOfInteraction: model.PixPointOfInteraction{
				TransactionData: model.PixTransactionData{
					QRCode:       "00020126pixcopypaste",
					QRCodeBase64: "aVFSY29kZQ==",
				},
			},
		},
	}
	svc := newPaymentService(db, mp)

	user := &auth.User{ID: "customer-1", Email: "ana@example.com", GivenName: "Ana", FamilyName: "Souza"}
	resp, err := svc.CreatePix(context.Background(), user, &dto.CreatePixPaymentRequest{
		OrderID: order.ID,
		Amount:  15.0,
	})
	require.NoError(t, err)
	require.Equal(t, "12345", resp.MercadoPagoID)
	require.Equal(t, "00020126pixcopypaste", resp.QRCode)
	require.Equal(t, "aVFSY29kZQ==", resp.QRCodeBase64)
	require.Equal(t, model.PaymentStatusPending, resp.Status)

	require.Equal(t, "ana@example.com", mp.lastCreate.PayerEmail)
	require.Equal(t, fmt.Sprintf("Pedido #%d", order.ID), mp.lastCreate.Description)

	var stored model.Payment
	require.NoError(t, db.First(&stored, resp.PaymentID).Error)
	require.Equal(t, order.ID, stored.OrderID)
	require.Equal(t, "12345", stored.TransactionID)
}

func TestCreatePixPaymentSupersedesPending(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	bag := seedBag(t, db, establishment.ID, 3, 15.0)
	order := seedOrder(t, db, bag.ID, "customer-1", "AAAAA2")

	mp := &fakeMercadoPago{created: &model.MercadoPagoPayment{ID: 100, Status: "pending"}}
	svc := newPaymentService(db, mp)
	user := &auth.User{ID: "customer-1"}

	first, err := svc.CreatePix(context.Background(), user, &dto.CreatePixPaymentRequest{
		OrderID: order.ID, Amount: 15.0,
	})
	require.NoError(t, err)

	mp.created = &model.MercadoPagoPayment{ID: 101, Status: "pending"}
	second, err := svc.CreatePix(context.Background(), user, &dto.CreatePixPaymentRequest{
		OrderID: order.ID, Amount: 15.0,
	})
	require.NoError(t, err)

	var superseded model.Payment
	require.NoError(t, db.First(&superseded, first.PaymentID).Error)
	require.Equal(t, model.PaymentStatusFailed, superseded.Status)

	var active model.Payment
	require.NoError(t, db.First(&active, second.PaymentID).Error)
	require.Equal(t, model.PaymentStatusPending, active.Status)
}

func TestCreatePixPaymentRequiresOrderOwnership(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	bag := seedBag(t, db, establishment.ID, 3, 15.0)
	order := seedOrder(t, db, bag.ID, "customer-1", "AAAAA3")

	svc := newPaymentService(db, &fakeMercadoPago{})

	_, err := svc.CreatePix(context.Background(), &auth.User{ID: "customer-2"}, &dto.CreatePixPaymentRequest{
		OrderID: order.ID, Amount: 15.0,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPaymentStatusOwnership(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	bag := seedBag(t, db, establishment.ID, 3, 15.0)
	order := seedOrder(t, db, bag.ID, "customer-1", "AAAAA4")

	payment := &model.Payment{
		OrderID:       order.ID,
		Amount:        15.0,
		PaymentMethod: "pix",
		Status:        model.PaymentStatusPending,
		TransactionID: "txn-900",
	}
	require.NoError(t, db.Create(payment).Error)

	svc := newPaymentService(db, &fakeMercadoPago{})

	status, err := svc.Status(context.Background(), payment.ID, "customer-1")
	require.NoError(t, err)
	require.Equal(t, model.PaymentStatusPending, status.Status)
	require.Equal(t, 15.0, status.Amount)

	_, err = svc.Status(context.Background(), payment.ID, "customer-2")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestWebhookApprovedConfirmsOrder(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	bag := seedBag(t, db, establishment.ID, 3, 15.0)
	order := seedOrder(t, db, bag.ID, "customer-1", "AAAAA5")

	payment := &model.Payment{
		OrderID:       order.ID,
		Amount:        15.0,
		PaymentMethod: "pix",
		Status:        model.PaymentStatusPending,
		TransactionID: "555",
	}
	require.NoError(t, db.Create(payment).Error)

	mp := &fakeMercadoPago{fetched: &model.MercadoPagoPayment{ID: 555, Status: "approved"}}
	svc := newPaymentService(db, mp)

	signature := signedWebhook("req-1", "555", "1724800000")
	require.NoError(t, svc.HandleWebhook(context.Background(), signature, "req-1", webhookBody("555")))

	var storedPayment model.Payment
	require.NoError(t, db.First(&storedPayment, payment.ID).Error)
	require.Equal(t, model.PaymentStatusCompleted, storedPayment.Status)
	require.NotNil(t, storedPayment.CompletedAt)

	var storedOrder model.Order
	require.NoError(t, db.First(&storedOrder, order.ID).Error)
	require.Equal(t, model.OrderStatusConfirmed, storedOrder.Status)
	require.True(t, storedOrder.PaymentConfirmed)
}

func TestWebhookRejectedFailsPayment(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	bag := seedBag(t, db, establishment.ID, 3, 15.0)
	order := seedOrder(t, db, bag.ID, "customer-1", "AAAAA6")

	payment := &model.Payment{
		OrderID:       order.ID,
		Amount:        15.0,
		PaymentMethod: "pix",
		Status:        model.PaymentStatusPending,
		TransactionID: "556",
	}
	require.NoError(t, db.Create(payment).Error)

	mp := &fakeMercadoPago{fetched: &model.MercadoPagoPayment{ID: 556, Status: "rejected"}}
	svc := newPaymentService(db, mp)

	signature := signedWebhook("req-2", "556", "1724800001")
	require.NoError(t, svc.HandleWebhook(context.Background(), signature, "req-2", webhookBody("556")))

	var storedPayment model.Payment
	require.NoError(t, db.First(&storedPayment, payment.ID).Error)
	require.Equal(t, model.PaymentStatusFailed, storedPayment.Status)
	require.Nil(t, storedPayment.CompletedAt)

	var storedOrder model.Order
	require.NoError(t, db.First(&storedOrder, order.ID).Error)
	require.Equal(t, model.OrderStatusPending, storedOrder.Status)
}

func TestWebhookUnknownTransactionIsAcknowledged(t *testing.T) {
	db := newTestDB(t)

	mp := &fakeMercadoPago{fetched: &model.MercadoPagoPayment{ID: 999, Status: "approved"}}
	svc := newPaymentService(db, mp)

	signature := signedWebhook("req-3", "999", "1724800002")
	require.NoError(t, svc.HandleWebhook(context.Background(), signature, "req-3", webhookBody("999")))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db := newTestDB(t)

	mp := &fakeMercadoPago{}
	svc := newPaymentService(db, mp)

	err := svc.HandleWebhook(context.Background(),
		"ts=1724800003,v1=deadbeef", "req-4", webhookBody("555"))
	require.Error(t, err)
	require.Zero(t, mp.getCalls)
}

func TestWebhookIgnoresNonPaymentEvents(t *testing.T) {
	db := newTestDB(t)

	mp := &fakeMercadoPago{}
	svc := newPaymentService(db, mp)

	body := []byte(`{"type":"plan","data":{"id":"1"}}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), "", "", body))
	require.Zero(t, mp.getCalls)
}

func TestWebhookAcknowledgesGatewayLookupFailure(t *testing.T) {
	db := newTestDB(t)

	mp := &fakeMercadoPago{getErr: fmt.Errorf("gateway down")}
	svc := newPaymentService(db, mp)

	signature := signedWebhook("req-5", "777", "1724800004")
	require.NoError(t, svc.HandleWebhook(context.Background(), signature, "req-5", webhookBody("777")))
}
