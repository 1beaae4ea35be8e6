package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"salva-iguaba-api/internal/client"
	"salva-iguaba-api/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database and runs the migrations.
// cache=shared keeps the schema visible across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, client.Migrate(db))

	return db
}

func seedEstablishment(t *testing.T, db *gorm.DB, ownerUserID string) *model.Establishment {
	t.Helper()

	establishment := &model.Establishment{
		Name:           "Padaria do Porto",
		Category:       "padaria",
		Address:        "Rua da Praia, 10, Iguaba Grande",
		Latitude:       -22.8377,
		Longitude:      -42.2247,
		OwnerUserID:    ownerUserID,
		IsActive:       true,
		ApprovalStatus: model.ApprovalStatusApproved,
		IsApproved:     true,
	}
	require.NoError(t, db.Create(establishment).Error)

	return establishment
}

func seedBag(t *testing.T, db *gorm.DB, establishmentID uint, qty int, price float64) *model.Bag {
	t.Helper()

	bag := &model.Bag{
		EstablishmentID:   establishmentID,
		Name:              "Sacola Surpresa",
		Price:             price,
		QuantityAvailable: qty,
		PickupStartTime:   "18:00",
		PickupEndTime:     "19:30",
		PickupDate:        time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		IsActive:          true,
	}
	require.NoError(t, db.Create(bag).Error)

	return bag
}
