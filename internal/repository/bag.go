package repository

import (
	"context"
	"time"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"

	"gorm.io/gorm"
)

type BagRepository interface {
	Create(ctx context.Context, bag *model.Bag) error
	FindByID(ctx context.Context, id uint) (*model.Bag, error)
	// FindWithOwner resolves a bag together with the owner of its parent
	// establishment, for ownership checks.
	FindWithOwner(ctx context.Context, id uint) (*BagWithOwner, error)
	ListAvailable(ctx context.Context, today string) ([]*dto.BagWithEstablishment, error)
	ListByEstablishment(ctx context.Context, establishmentID uint) ([]*model.Bag, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Deactivate(ctx context.Context, id uint) error
	// DecrementQuantity atomically takes qty units off a bag. Returns false
	// when the bag is missing, inactive, or short on quantity; the caller
	// treats that as insufficient availability.
	DecrementQuantity(ctx context.Context, tx *gorm.DB, id uint, qty int) (bool, error)

	ListPhotos(ctx context.Context, bagID uint) ([]*model.BagPhoto, error)
	AddPhoto(ctx context.Context, photo *model.BagPhoto) error
	DeletePhoto(ctx context.Context, bagID, photoID uint) error
}

type BagWithOwner struct {
	model.Bag
	OwnerUserID string
}

type bagRepoImpl struct {
	db *gorm.DB
}

func NewBagRepository(db *gorm.DB) BagRepository {
	return &bagRepoImpl{db: db}
}

func (r *bagRepoImpl) Create(ctx context.Context, bag *model.Bag) error {
	return r.db.WithContext(ctx).Create(bag).Error
}

func (r *bagRepoImpl) FindByID(ctx context.Context, id uint) (*model.Bag, error) {
	var bag model.Bag
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bag).Error
	if err != nil {
		return nil, err
	}

	return &bag, nil
}

func (r *bagRepoImpl) FindWithOwner(ctx context.Context, id uint) (*BagWithOwner, error) {
	var row BagWithOwner
	err := r.db.WithContext(ctx).
		Model(&model.Bag{}).
		Select("bags.*, establishments.owner_user_id AS owner_user_id").
		Joins("JOIN establishments ON establishments.id = bags.establishment_id").
		Where("bags.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// ListAvailable is the customer-facing catalog: active bags of active,
// approved establishments with stock left and a pickup date not in the past.
func (r *bagRepoImpl) ListAvailable(ctx context.Context, today string) ([]*dto.BagWithEstablishment, error) {
	var rows []*dto.BagWithEstablishment
	err := r.db.WithContext(ctx).
		Model(&model.Bag{}).
		Select(`bags.*,
			establishments.name AS establishment_name,
			establishments.category AS establishment_category,
			establishments.address AS establishment_address,
			establishments.latitude AS establishment_latitude,
			establishments.longitude AS establishment_longitude`).
		Joins("JOIN establishments ON establishments.id = bags.establishment_id").
		Where("bags.is_active = ?", true).
		Where("establishments.is_active = ?", true).
		Where("establishments.approval_status = ?", model.ApprovalStatusApproved).
		Where("bags.quantity_available > 0").
		Where("bags.pickup_date >= ?", today).
		Order("bags.pickup_date ASC, bags.pickup_start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *bagRepoImpl) ListByEstablishment(ctx context.Context, establishmentID uint) ([]*model.Bag, error) {
	var bags []*model.Bag
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND is_active = ?", establishmentID, true).
		Order("pickup_date DESC, pickup_start_time DESC").
		Find(&bags).Error
	if err != nil {
		return nil, err
	}

	return bags, nil
}

func (r *bagRepoImpl) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&model.Bag{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *bagRepoImpl) Deactivate(ctx context.Context, id uint) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (r *bagRepoImpl) DecrementQuantity(ctx context.Context, tx *gorm.DB, id uint, qty int) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Bag{}).
		Where("id = ? AND is_active = ? AND quantity_available >= ?", id, true, qty).
		Updates(map[string]interface{}{
			"quantity_available": gorm.Expr("quantity_available - ?", qty),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *bagRepoImpl) ListPhotos(ctx context.Context, bagID uint) ([]*model.BagPhoto, error) {
	var photos []*model.BagPhoto
	err := r.db.WithContext(ctx).
		Where("bag_id = ?", bagID).
		Order("display_order ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}

	return photos, nil
}

func (r *bagRepoImpl) AddPhoto(ctx context.Context, photo *model.BagPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *bagRepoImpl) DeletePhoto(ctx context.Context, bagID, photoID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND bag_id = ?", photoID, bagID).
		Delete(&model.BagPhoto{}).Error
}
