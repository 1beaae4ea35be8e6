package repository

import (
	"context"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"

	"gorm.io/gorm"
)

type AdminRepository interface {
	// IsAdmin checks the capability row; its presence is the whole grant.
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, admin *model.Admin) error
	List(ctx context.Context) ([]*model.Admin, error)
	PlatformStats(ctx context.Context) (*dto.AdminStats, error)
}

type adminRepoImpl struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepoImpl{db: db}
}

func (r *adminRepoImpl) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count > 0, err
}

func (r *adminRepoImpl) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepoImpl) List(ctx context.Context) ([]*model.Admin, error) {
	var admins []*model.Admin
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&admins).Error
	if err != nil {
		return nil, err
	}

	return admins, nil
}

func (r *adminRepoImpl) PlatformStats(ctx context.Context) (*dto.AdminStats, error) {
	stats := &dto.AdminStats{}

	err := r.db.WithContext(ctx).Model(&model.Establishment{}).
		Count(&stats.TotalEstablishments).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&model.Establishment{}).
		Where("approval_status = ?", model.ApprovalStatusPending).
		Count(&stats.PendingEstablishments).Error
	if err != nil {
		return nil, err
	}
	stats.ApprovedEstablishments = stats.TotalEstablishments - stats.PendingEstablishments

	err = r.db.WithContext(ctx).Model(&model.Bag{}).
		Where("is_active = ?", true).
		Count(&stats.TotalBags).Error
	if err != nil {
		return nil, err
	}

	type revenueRow struct {
		Count    int64
		Revenue  float64
		Platform float64
	}
	var rev revenueRow
	err = r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS revenue, COALESCE(SUM(platform_fee), 0) AS platform").
		Where("status = ?", model.OrderStatusCompleted).
		Scan(&rev).Error
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = rev.Count
	stats.TotalRevenue = rev.Revenue
	stats.PlatformRevenue = rev.Platform

	err = r.db.WithContext(ctx).Model(&model.Order{}).
		Distinct("customer_user_id").
		Count(&stats.TotalUsers).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
