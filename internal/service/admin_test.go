package service

import (
	"context"
	"testing"

	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminService(db *gorm.DB) AdminService {
	return NewAdminService(
		repository.NewAdminRepository(db),
		repository.NewEstablishmentRepository(db),
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewSettingsRepository(db),
	)
}

func seedPendingEstablishment(t *testing.T, db *gorm.DB, owner string) *model.Establishment {
	t.Helper()

	establishment := &model.Establishment{
		Name:           "Pizzaria Nova",
		Category:       "pizzaria",
		Address:        "Rua do Canal, 3",
		OwnerUserID:    owner,
		IsActive:       true,
		ApprovalStatus: model.ApprovalStatusPending,
	}
	require.NoError(t, db.Create(establishment).Error)

	return establishment
}

func TestAdminApproveEstablishment(t *testing.T) {
	db := newTestDB(t)
	establishment := seedPendingEstablishment(t, db, "merchant-1")

	svc := newAdminService(db)
	ctx := context.Background()

	require.NoError(t, svc.ApproveEstablishment(ctx, establishment.ID, "admin-1"))

	var stored model.Establishment
	require.NoError(t, db.First(&stored, establishment.ID).Error)
	require.Equal(t, model.ApprovalStatusApproved, stored.ApprovalStatus)
	require.True(t, stored.IsApproved)
	require.Equal(t, "admin-1", stored.ApprovedBy)
	require.NotNil(t, stored.ApprovedAt)

	// Decisions are final.
	require.ErrorIs(t, svc.ApproveEstablishment(ctx, establishment.ID, "admin-1"), ErrInvalidTransition)
	require.ErrorIs(t, svc.RejectEstablishment(ctx, establishment.ID, "x"), ErrInvalidTransition)
}

func TestAdminRejectEstablishment(t *testing.T) {
	db := newTestDB(t)
	establishment := seedPendingEstablishment(t, db, "merchant-1")

	svc := newAdminService(db)

	require.NoError(t, svc.RejectEstablishment(context.Background(), establishment.ID, ""))

	var stored model.Establishment
	require.NoError(t, db.First(&stored, establishment.ID).Error)
	require.Equal(t, model.ApprovalStatusRejected, stored.ApprovalStatus)
	require.Equal(t, "Não especificado", stored.RejectionReason)
}

func TestAdminApproveUnknownEstablishment(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	require.ErrorIs(t, svc.ApproveEstablishment(context.Background(), 999, "admin-1"), ErrInvalidTransition)
}

func TestAdminOverridePaymentStatus(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	bag := seedBag(t, db, establishment.ID, 3, 10.0)
	order := seedOrder(t, db, bag.ID, "customer-1", "BBBBB1")

	payment := &model.Payment{
		OrderID:       order.ID,
		Amount:        10.0,
		PaymentMethod: "pix",
		Status:        model.PaymentStatusPending,
		TransactionID: "txn-adm-1",
	}
	require.NoError(t, db.Create(payment).Error)

	svc := newAdminService(db)
	ctx := context.Background()

	require.ErrorIs(t, svc.OverridePaymentStatus(ctx, payment.ID, "paid"), ErrInvalidInput)
	require.ErrorIs(t, svc.OverridePaymentStatus(ctx, 999, model.PaymentStatusCompleted), ErrNotFound)

	require.NoError(t, svc.OverridePaymentStatus(ctx, payment.ID, model.PaymentStatusRefunded))

	var stored model.Payment
	require.NoError(t, db.First(&stored, payment.ID).Error)
	require.Equal(t, model.PaymentStatusRefunded, stored.Status)
}

func TestAdminCapability(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	isAdmin, err := svc.IsAdmin(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, isAdmin)

	admin, err := svc.AddAdmin(ctx, "user-1", "root")
	require.NoError(t, err)
	require.NotZero(t, admin.ID)

	isAdmin, err = svc.IsAdmin(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, isAdmin)

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)

	_, err = svc.AddAdmin(ctx, "", "root")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminSettings(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	require.ErrorIs(t, svc.UpdateSetting(ctx, "", "x", "admin-1"), ErrInvalidInput)

	require.NoError(t, svc.UpdateSetting(ctx, "platform_fee_percent", "10", "admin-1"))
	require.NoError(t, svc.UpdateSetting(ctx, "platform_fee_percent", "12", "admin-2"))

	settings, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	require.Equal(t, "12", settings[0].Value)
	require.Equal(t, "admin-2", settings[0].UpdatedBy)
}

func TestAdminPlatformStats(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")
	seedPendingEstablishment(t, db, "merchant-2")
	bag := seedBag(t, db, establishment.ID, 5, 10.0)

	completed := seedOrder(t, db, bag.ID, "customer-1", "CCCCC1")
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", completed.ID).
		Updates(map[string]interface{}{
			"status":       model.OrderStatusCompleted,
			"total_price":  30.0,
			"platform_fee": 3.0,
		}).Error)
	seedOrder(t, db, bag.ID, "customer-2", "CCCCC2")

	svc := newAdminService(db)

	stats, err := svc.PlatformStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalEstablishments)
	require.Equal(t, int64(1), stats.PendingEstablishments)
	require.Equal(t, int64(1), stats.ApprovedEstablishments)
	require.Equal(t, int64(1), stats.TotalBags)
	require.Equal(t, int64(1), stats.TotalOrders)
	require.Equal(t, 30.0, stats.TotalRevenue)
	require.Equal(t, 3.0, stats.PlatformRevenue)
	require.Equal(t, int64(2), stats.TotalUsers)
}
