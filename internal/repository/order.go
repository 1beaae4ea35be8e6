package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	// FindWithOwner resolves an order with the owner of the establishment
	// its bag belongs to, for merchant-side authorization.
	FindWithOwner(ctx context.Context, id uint) (*OrderWithOwner, error)
	ListByCustomer(ctx context.Context, customerUserID string) ([]*dto.OrderWithDetails, error)
	ListByMerchant(ctx context.Context, ownerUserID string) ([]*dto.OrderWithDetails, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]*dto.OrderWithDetails, error)
	// TransitionStatus advances status only from one of the given states, so
	// transitions never run backward. Returns false when no row qualified.
	TransitionStatus(ctx context.Context, tx *gorm.DB, id uint, from []string, to string, paymentConfirmed *bool) (bool, error)
	MerchantStats(ctx context.Context, ownerUserID string, today string) (*dto.MerchantStats, error)
}

type OrderWithOwner struct {
	model.Order
	OwnerUserID string
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{db: db}
}

// IsDuplicateKeyError reports whether err is a uniqueness violation. The
// postgres and sqlite translators both surface gorm.ErrDuplicatedKey, the
// string checks cover drivers that do not translate.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindWithOwner(ctx context.Context, id uint) (*OrderWithOwner, error) {
	var row OrderWithOwner
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("orders.*, establishments.owner_user_id AS owner_user_id").
		Joins("JOIN bags ON bags.id = orders.bag_id").
		Joins("JOIN establishments ON establishments.id = bags.establishment_id").
		Where("orders.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}

	return &row, nil
}

const orderDetailsSelect = `orders.*,
	bags.name AS bag_name,
	bags.price AS bag_price,
	bags.pickup_start_time AS pickup_start_time,
	bags.pickup_end_time AS pickup_end_time,
	bags.pickup_date AS pickup_date,
	establishments.name AS establishment_name,
	establishments.address AS establishment_address,
	establishments.phone AS establishment_phone`

func (r *orderRepoImpl) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select(orderDetailsSelect).
		Joins("JOIN bags ON bags.id = orders.bag_id").
		Joins("JOIN establishments ON establishments.id = bags.establishment_id")
}

func (r *orderRepoImpl) ListByCustomer(ctx context.Context, customerUserID string) ([]*dto.OrderWithDetails, error) {
	var rows []*dto.OrderWithDetails
	err := r.detailsQuery(ctx).
		Where("orders.customer_user_id = ?", customerUserID).
		Order("orders.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *orderRepoImpl) ListByMerchant(ctx context.Context, ownerUserID string) ([]*dto.OrderWithDetails, error) {
	var rows []*dto.OrderWithDetails
	err := r.detailsQuery(ctx).
		Where("establishments.owner_user_id = ?", ownerUserID).
		Order("orders.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context, status string, limit, offset int) ([]*dto.OrderWithDetails, error) {
	q := r.detailsQuery(ctx)
	if status != "" && status != "all" {
		q = q.Where("orders.status = ?", status)
	}

	var rows []*dto.OrderWithDetails
	err := q.Order("orders.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *orderRepoImpl) TransitionStatus(ctx context.Context, tx *gorm.DB, id uint, from []string, to string, paymentConfirmed *bool) (bool, error) {
	if tx == nil {
		tx = r.db
	}

	fields := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if paymentConfirmed != nil {
		fields["payment_confirmed"] = *paymentConfirmed
	}

	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *orderRepoImpl) MerchantStats(ctx context.Context, ownerUserID string, today string) (*dto.MerchantStats, error) {
	stats := &dto.MerchantStats{}

	type salesRow struct {
		Count int64
		Total float64
	}

	var total salesRow
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(orders.total_price), 0) AS total").
		Joins("JOIN bags ON bags.id = orders.bag_id").
		Joins("JOIN establishments ON establishments.id = bags.establishment_id").
		Where("establishments.owner_user_id = ? AND orders.status = ?", ownerUserID, model.OrderStatusCompleted).
		Scan(&total).Error
	if err != nil {
		return nil, err
	}
	stats.TotalSales = total.Count
	stats.TotalRevenue = total.Total

	err = r.db.WithContext(ctx).
		Model(&model.Order{}).
		Joins("JOIN bags ON bags.id = orders.bag_id").
		Joins("JOIN establishments ON establishments.id = bags.establishment_id").
		Where("establishments.owner_user_id = ? AND orders.status = ?", ownerUserID, model.OrderStatusCompleted).
		Where("orders.created_at >= ?", today).
		Count(&stats.TodaySales).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&model.Bag{}).
		Joins("JOIN establishments ON establishments.id = bags.establishment_id").
		Where("establishments.owner_user_id = ?", ownerUserID).
		Where("bags.is_active = ? AND bags.quantity_available > 0", true).
		Count(&stats.ActiveBags).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
