package repository

import (
	"context"
	"time"

	"salva-iguaba-api/internal/model"

	"gorm.io/gorm"
)

type EstablishmentRepository interface {
	Create(ctx context.Context, establishment *model.Establishment) error
	FindActiveByID(ctx context.Context, id uint) (*model.Establishment, error)
	FindByID(ctx context.Context, id uint) (*model.Establishment, error)
	ListActive(ctx context.Context) ([]*model.Establishment, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]*model.Establishment, error)
	ListByApproval(ctx context.Context, status string) ([]*model.Establishment, error)
	Approve(ctx context.Context, id uint, approvedBy string) (bool, error)
	Reject(ctx context.Context, id uint, reason string) (bool, error)
}

type establishmentRepoImpl struct {
	db *gorm.DB
}

func NewEstablishmentRepository(db *gorm.DB) EstablishmentRepository {
	return &establishmentRepoImpl{db: db}
}

func (r *establishmentRepoImpl) Create(ctx context.Context, establishment *model.Establishment) error {
	return r.db.WithContext(ctx).Create(establishment).Error
}

func (r *establishmentRepoImpl) FindActiveByID(ctx context.Context, id uint) (*model.Establishment, error) {
	var establishment model.Establishment
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&establishment).Error
	if err != nil {
		return nil, err
	}

	return &establishment, nil
}

func (r *establishmentRepoImpl) FindByID(ctx context.Context, id uint) (*model.Establishment, error) {
	var establishment model.Establishment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&establishment).Error
	if err != nil {
		return nil, err
	}

	return &establishment, nil
}

func (r *establishmentRepoImpl) ListActive(ctx context.Context) ([]*model.Establishment, error) {
	var establishments []*model.Establishment
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&establishments).Error
	if err != nil {
		return nil, err
	}

	return establishments, nil
}

func (r *establishmentRepoImpl) ListByOwner(ctx context.Context, ownerUserID string) ([]*model.Establishment, error) {
	var establishments []*model.Establishment
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ? AND is_active = ?", ownerUserID, true).
		Order("name ASC").
		Find(&establishments).Error
	if err != nil {
		return nil, err
	}

	return establishments, nil
}

func (r *establishmentRepoImpl) ListByApproval(ctx context.Context, status string) ([]*model.Establishment, error) {
	q := r.db.WithContext(ctx).Model(&model.Establishment{})
	if status != "" && status != "all" {
		q = q.Where("approval_status = ?", status)
	}

	var establishments []*model.Establishment
	err := q.Order("created_at DESC").Find(&establishments).Error
	if err != nil {
		return nil, err
	}

	return establishments, nil
}

// Approve moves a pending establishment to approved. The status guard keeps
// already-decided establishments from being re-decided.
func (r *establishmentRepoImpl) Approve(ctx context.Context, id uint, approvedBy string) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Establishment{}).
		Where("id = ? AND approval_status = ?", id, model.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"approval_status": model.ApprovalStatusApproved,
			"is_approved":     true,
			"approved_by":     approvedBy,
			"approved_at":     now,
			"updated_at":      now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *establishmentRepoImpl) Reject(ctx context.Context, id uint, reason string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Establishment{}).
		Where("id = ? AND approval_status = ?", id, model.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"approval_status":  model.ApprovalStatusRejected,
			"is_approved":      false,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
