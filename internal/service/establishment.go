package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"

	"gorm.io/gorm"
)

type EstablishmentService interface {
	ListActive(ctx context.Context) ([]*model.Establishment, error)
	Get(ctx context.Context, id uint) (*model.Establishment, error)
	Create(ctx context.Context, ownerUserID string, req *dto.CreateEstablishmentRequest) (*model.Establishment, error)
	ListMine(ctx context.Context, ownerUserID string) ([]*model.Establishment, error)
}

type establishmentServiceImpl struct {
	establishmentRepo repository.EstablishmentRepository
}

func NewEstablishmentService(establishmentRepo repository.EstablishmentRepository) EstablishmentService {
	return &establishmentServiceImpl{establishmentRepo: establishmentRepo}
}

func (s *establishmentServiceImpl) ListActive(ctx context.Context) ([]*model.Establishment, error) {
	return s.establishmentRepo.ListActive(ctx)
}

func (s *establishmentServiceImpl) Get(ctx context.Context, id uint) (*model.Establishment, error) {
	establishment, err := s.establishmentRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: establishment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load establishment: %w", err)
	}

	return establishment, nil
}

// Create registers a merchant submission. It always starts pending; only an
// admin decision makes its bags publicly listable.
func (s *establishmentServiceImpl) Create(ctx context.Context, ownerUserID string, req *dto.CreateEstablishmentRequest) (*model.Establishment, error) {
	if req.Name == "" || req.Address == "" {
		return nil, fmt.Errorf("%w: name and address are required", ErrInvalidInput)
	}
	if !slices.Contains(model.EstablishmentCategories, req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	establishment := &model.Establishment{
		Name:           req.Name,
		Category:       req.Category,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Phone:          req.Phone,
		LogoURL:        req.LogoURL,
		OwnerUserID:    ownerUserID,
		IsActive:       true,
		ApprovalStatus: model.ApprovalStatusPending,
	}

	if err := s.establishmentRepo.Create(ctx, establishment); err != nil {
		return nil, fmt.Errorf("create establishment: %w", err)
	}

	return establishment, nil
}

func (s *establishmentServiceImpl) ListMine(ctx context.Context, ownerUserID string) ([]*model.Establishment, error) {
	return s.establishmentRepo.ListByOwner(ctx, ownerUserID)
}
