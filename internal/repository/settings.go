package repository

import (
	"context"
	"time"

	"salva-iguaba-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	List(ctx context.Context) ([]*model.SystemSetting, error)
	Upsert(ctx context.Context, key, value, updatedBy string) error
}

type settingsRepoImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepoImpl{db: db}
}

func (r *settingsRepoImpl) List(ctx context.Context) ([]*model.SystemSetting, error) {
	var settings []*model.SystemSetting
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&settings).Error
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *settingsRepoImpl) Upsert(ctx context.Context, key, value, updatedBy string) error {
	setting := &model.SystemSetting{
		Key:       key,
		Value:     value,
		UpdatedBy: updatedBy,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		}),
	}).Create(setting).Error
}
