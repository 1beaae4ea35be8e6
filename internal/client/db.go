package client

import (
	"fmt"
	"time"

	"salva-iguaba-api/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgresClient(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Establishment{},
		&model.Bag{},
		&model.BagPhoto{},
		&model.Order{},
		&model.Payment{},
		&model.Admin{},
		&model.SystemSetting{},
	)
}
