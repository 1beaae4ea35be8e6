package service

import (
	"context"
	"fmt"
	"slices"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"
)

type AdminService interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	PlatformStats(ctx context.Context) (*dto.AdminStats, error)
	ListEstablishments(ctx context.Context, status string) ([]*model.Establishment, error)
	ApproveEstablishment(ctx context.Context, id uint, approvedBy string) error
	RejectEstablishment(ctx context.Context, id uint, reason string) error
	ListOrders(ctx context.Context, status string, limit, offset int) ([]*dto.OrderWithDetails, error)
	ListPayments(ctx context.Context, status string) ([]*dto.AdminPaymentRow, error)
	OverridePaymentStatus(ctx context.Context, paymentID uint, status string) error
	ListSettings(ctx context.Context) ([]*model.SystemSetting, error)
	UpdateSetting(ctx context.Context, key, value, updatedBy string) error
	AddAdmin(ctx context.Context, userID, createdBy string) (*model.Admin, error)
	ListAdmins(ctx context.Context) ([]*model.Admin, error)
}

type adminServiceImpl struct {
	adminRepo         repository.AdminRepository
	establishmentRepo repository.EstablishmentRepository
	orderRepo         repository.OrderRepository
	paymentRepo       repository.PaymentRepository
	settingsRepo      repository.SettingsRepository
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	establishmentRepo repository.EstablishmentRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	settingsRepo repository.SettingsRepository,
) AdminService {
	return &adminServiceImpl{
		adminRepo:         adminRepo,
		establishmentRepo: establishmentRepo,
		orderRepo:         orderRepo,
		paymentRepo:       paymentRepo,
		settingsRepo:      settingsRepo,
	}
}

func (s *adminServiceImpl) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.adminRepo.IsAdmin(ctx, userID)
}

func (s *adminServiceImpl) PlatformStats(ctx context.Context) (*dto.AdminStats, error) {
	return s.adminRepo.PlatformStats(ctx)
}

func (s *adminServiceImpl) ListEstablishments(ctx context.Context, status string) ([]*model.Establishment, error) {
	return s.establishmentRepo.ListByApproval(ctx, status)
}

func (s *adminServiceImpl) ApproveEstablishment(ctx context.Context, id uint, approvedBy string) error {
	ok, err := s.establishmentRepo.Approve(ctx, id, approvedBy)
	if err != nil {
		return fmt.Errorf("approve establishment: %w", err)
	}
	if !ok {
		// Either the id is unknown or the establishment was already decided.
		return ErrInvalidTransition
	}

	return nil
}

func (s *adminServiceImpl) RejectEstablishment(ctx context.Context, id uint, reason string) error {
	if reason == "" {
		reason = "Não especificado"
	}

	ok, err := s.establishmentRepo.Reject(ctx, id, reason)
	if err != nil {
		return fmt.Errorf("reject establishment: %w", err)
	}
	if !ok {
		return ErrInvalidTransition
	}

	return nil
}

func (s *adminServiceImpl) ListOrders(ctx context.Context, status string, limit, offset int) ([]*dto.OrderWithDetails, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return s.orderRepo.ListAll(ctx, status, limit, offset)
}

func (s *adminServiceImpl) ListPayments(ctx context.Context, status string) ([]*dto.AdminPaymentRow, error) {
	return s.paymentRepo.ListAll(ctx, status)
}

var paymentStatuses = []string{
	model.PaymentStatusPending,
	model.PaymentStatusProcessing,
	model.PaymentStatusCompleted,
	model.PaymentStatusFailed,
	model.PaymentStatusRefunded,
}

func (s *adminServiceImpl) OverridePaymentStatus(ctx context.Context, paymentID uint, status string) error {
	if !slices.Contains(paymentStatuses, status) {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}

	ok, err := s.paymentRepo.UpdateStatus(ctx, paymentID, status)
	if err != nil {
		return fmt.Errorf("override payment status: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
	}

	return nil
}

func (s *adminServiceImpl) ListSettings(ctx context.Context) ([]*model.SystemSetting, error) {
	return s.settingsRepo.List(ctx)
}

func (s *adminServiceImpl) UpdateSetting(ctx context.Context, key, value, updatedBy string) error {
	if key == "" {
		return fmt.Errorf("%w: setting key is required", ErrInvalidInput)
	}

	return s.settingsRepo.Upsert(ctx, key, value, updatedBy)
}

func (s *adminServiceImpl) AddAdmin(ctx context.Context, userID, createdBy string) (*model.Admin, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	admin := &model.Admin{
		UserID:    userID,
		CreatedBy: createdBy,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	return admin, nil
}

func (s *adminServiceImpl) ListAdmins(ctx context.Context) ([]*model.Admin, error) {
	return s.adminRepo.List(ctx)
}
