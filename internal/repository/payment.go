package repository

import (
	"context"
	"time"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	FindByID(ctx context.Context, id uint) (*PaymentWithCustomer, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	ListByCustomer(ctx context.Context, customerUserID string) ([]*CustomerPaymentRow, error)
	ListAll(ctx context.Context, status string) ([]*dto.AdminPaymentRow, error)
	// UpdateStatusByTransactionID reconciles the webhook's status; the
	// completed timestamp is stamped only on completion. Returns false when
	// no local payment carries the transaction id.
	UpdateStatusByTransactionID(ctx context.Context, tx *gorm.DB, transactionID, status string) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status string) (bool, error)
	// SupersedePending fails any still-pending payments of an order, so a
	// reissued PIX code leaves at most one attempt able to complete.
	SupersedePending(ctx context.Context, tx *gorm.DB, orderID uint) error
}

type PaymentWithCustomer struct {
	model.Payment
	CustomerUserID string
}

type CustomerPaymentRow struct {
	model.Payment
	BagName string `json:"bag_name"`
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{db: db}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByID(ctx context.Context, id uint) (*PaymentWithCustomer, error) {
	var row PaymentWithCustomer
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Select("payments.*, orders.customer_user_id AS customer_user_id").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("payments.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (r *paymentRepoImpl) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) ListByCustomer(ctx context.Context, customerUserID string) ([]*CustomerPaymentRow, error) {
	var rows []*CustomerPaymentRow
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Select("payments.*, bags.name AS bag_name").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Joins("JOIN bags ON bags.id = orders.bag_id").
		Where("orders.customer_user_id = ?", customerUserID).
		Order("payments.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *paymentRepoImpl) ListAll(ctx context.Context, status string) ([]*dto.AdminPaymentRow, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Select(`payments.*,
			orders.total_price AS order_total,
			establishments.name AS establishment_name`).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Joins("JOIN bags ON bags.id = orders.bag_id").
		Joins("JOIN establishments ON establishments.id = bags.establishment_id")
	if status != "" && status != "all" {
		q = q.Where("payments.status = ?", status)
	}

	var rows []*dto.AdminPaymentRow
	err := q.Order("payments.created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *paymentRepoImpl) UpdateStatusByTransactionID(ctx context.Context, tx *gorm.DB, transactionID, status string) (bool, error) {
	if tx == nil {
		tx = r.db
	}

	fields := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == model.PaymentStatusCompleted {
		fields["completed_at"] = time.Now()
	}

	result := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("transaction_id = ?", transactionID).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *paymentRepoImpl) UpdateStatus(ctx context.Context, id uint, status string) (bool, error) {
	fields := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == model.PaymentStatusCompleted {
		fields["completed_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *paymentRepoImpl) SupersedePending(ctx context.Context, tx *gorm.DB, orderID uint) error {
	if tx == nil {
		tx = r.db
	}

	return tx.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":     model.PaymentStatusFailed,
			"updated_at": time.Now(),
		}).Error
}
