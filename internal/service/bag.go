package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"

	"gorm.io/gorm"
)

type BagService interface {
	ListAvailable(ctx context.Context) ([]*dto.BagWithEstablishment, error)
	ListByEstablishment(ctx context.Context, establishmentID uint) ([]*model.Bag, error)
	Create(ctx context.Context, ownerUserID string, req *dto.CreateBagRequest) (*model.Bag, error)
	Update(ctx context.Context, bagID uint, ownerUserID string, req *dto.UpdateBagRequest) error
	Deactivate(ctx context.Context, bagID uint, ownerUserID string) error

	ListPhotos(ctx context.Context, bagID uint) ([]*model.BagPhoto, error)
	AddPhoto(ctx context.Context, bagID uint, ownerUserID string, req *dto.AddBagPhotoRequest) (*model.BagPhoto, error)
	DeletePhoto(ctx context.Context, bagID, photoID uint, ownerUserID string) error
}

type bagServiceImpl struct {
	bagRepo           repository.BagRepository
	establishmentRepo repository.EstablishmentRepository
}

func NewBagService(
	bagRepo repository.BagRepository,
	establishmentRepo repository.EstablishmentRepository,
) BagService {
	return &bagServiceImpl{
		bagRepo:           bagRepo,
		establishmentRepo: establishmentRepo,
	}
}

func (s *bagServiceImpl) ListAvailable(ctx context.Context) ([]*dto.BagWithEstablishment, error) {
	today := time.Now().Format("2006-01-02")
	return s.bagRepo.ListAvailable(ctx, today)
}

func (s *bagServiceImpl) ListByEstablishment(ctx context.Context, establishmentID uint) ([]*model.Bag, error) {
	return s.bagRepo.ListByEstablishment(ctx, establishmentID)
}

func (s *bagServiceImpl) Create(ctx context.Context, ownerUserID string, req *dto.CreateBagRequest) (*model.Bag, error) {
	if req.Name == "" || req.Price <= 0 || req.QuantityAvailable < 0 {
		return nil, fmt.Errorf("%w: name and a positive price are required", ErrInvalidInput)
	}

	establishment, err := s.establishmentRepo.FindActiveByID(ctx, req.EstablishmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: establishment %d", ErrNotFound, req.EstablishmentID)
		}
		return nil, fmt.Errorf("load establishment: %w", err)
	}
	if establishment.OwnerUserID != ownerUserID {
		return nil, ErrForbidden
	}

	bag := &model.Bag{
		EstablishmentID:   req.EstablishmentID,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		OriginalPrice:     req.OriginalPrice,
		QuantityAvailable: req.QuantityAvailable,
		PickupStartTime:   req.PickupStartTime,
		PickupEndTime:     req.PickupEndTime,
		PickupDate:        req.PickupDate,
		IsActive:          true,
	}

	if err := s.bagRepo.Create(ctx, bag); err != nil {
		return nil, fmt.Errorf("create bag: %w", err)
	}

	return bag, nil
}

func (s *bagServiceImpl) Update(ctx context.Context, bagID uint, ownerUserID string, req *dto.UpdateBagRequest) error {
	if err := s.checkOwnership(ctx, bagID, ownerUserID); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		fields["original_price"] = *req.OriginalPrice
	}
	if req.QuantityAvailable != nil {
		if *req.QuantityAvailable < 0 {
			return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
		}
		fields["quantity_available"] = *req.QuantityAvailable
	}
	if req.PickupStartTime != nil {
		fields["pickup_start_time"] = *req.PickupStartTime
	}
	if req.PickupEndTime != nil {
		fields["pickup_end_time"] = *req.PickupEndTime
	}
	if req.PickupDate != nil {
		fields["pickup_date"] = *req.PickupDate
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	return s.bagRepo.Update(ctx, bagID, fields)
}

func (s *bagServiceImpl) Deactivate(ctx context.Context, bagID uint, ownerUserID string) error {
	if err := s.checkOwnership(ctx, bagID, ownerUserID); err != nil {
		return err
	}

	return s.bagRepo.Deactivate(ctx, bagID)
}

func (s *bagServiceImpl) ListPhotos(ctx context.Context, bagID uint) ([]*model.BagPhoto, error) {
	return s.bagRepo.ListPhotos(ctx, bagID)
}

func (s *bagServiceImpl) AddPhoto(ctx context.Context, bagID uint, ownerUserID string, req *dto.AddBagPhotoRequest) (*model.BagPhoto, error) {
	if req.PhotoURL == "" {
		return nil, fmt.Errorf("%w: photo_url is required", ErrInvalidInput)
	}

	if err := s.checkOwnership(ctx, bagID, ownerUserID); err != nil {
		return nil, err
	}

	photo := &model.BagPhoto{
		BagID:        bagID,
		PhotoURL:     req.PhotoURL,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.bagRepo.AddPhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("add bag photo: %w", err)
	}

	return photo, nil
}

func (s *bagServiceImpl) DeletePhoto(ctx context.Context, bagID, photoID uint, ownerUserID string) error {
	if err := s.checkOwnership(ctx, bagID, ownerUserID); err != nil {
		return err
	}

	return s.bagRepo.DeletePhoto(ctx, bagID, photoID)
}

// Bag mutation rights are derived through the parent establishment.
func (s *bagServiceImpl) checkOwnership(ctx context.Context, bagID uint, ownerUserID string) error {
	row, err := s.bagRepo.FindWithOwner(ctx, bagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: bag %d", ErrNotFound, bagID)
		}
		return fmt.Errorf("load bag: %w", err)
	}
	if row.OwnerUserID != ownerUserID {
		return ErrForbidden
	}

	return nil
}
