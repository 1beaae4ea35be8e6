package service

import (
	"context"
	"testing"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestEstablishmentCreateStartsPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewEstablishmentService(repository.NewEstablishmentRepository(db))

	establishment, err := svc.Create(context.Background(), "merchant-1", &dto.CreateEstablishmentRequest{
		Name:     "Café da Lagoa",
		Category: "cafeteria",
		Address:  "Rua das Ostras, 5, Iguaba Grande",
	})
	require.NoError(t, err)
	require.Equal(t, model.ApprovalStatusPending, establishment.ApprovalStatus)
	require.False(t, establishment.IsApproved)
	require.True(t, establishment.IsActive)
}

func TestEstablishmentCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewEstablishmentService(repository.NewEstablishmentRepository(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, "merchant-1", &dto.CreateEstablishmentRequest{
		Category: "padaria", Address: "Rua A",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "merchant-1", &dto.CreateEstablishmentRequest{
		Name: "Loja", Category: "farmácia", Address: "Rua A",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEstablishmentGetAndListMine(t *testing.T) {
	db := newTestDB(t)
	establishment := seedEstablishment(t, db, "merchant-1")

	svc := NewEstablishmentService(repository.NewEstablishmentRepository(db))
	ctx := context.Background()

	got, err := svc.Get(ctx, establishment.ID)
	require.NoError(t, err)
	require.Equal(t, establishment.Name, got.Name)

	_, err = svc.Get(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)

	mine, err := svc.ListMine(ctx, "merchant-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	other, err := svc.ListMine(ctx, "merchant-2")
	require.NoError(t, err)
	require.Empty(t, other)
}
