package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/logger"
	"salva-iguaba-api/internal/metrics"
	"salva-iguaba-api/internal/model"
	"salva-iguaba-api/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Attempts at inserting an order before giving up on pickup-code collisions.
const pickupCodeRetries = 5

type OrderService interface {
	Create(ctx context.Context, customerUserID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	ListMine(ctx context.Context, customerUserID string) ([]*dto.OrderWithDetails, error)
	Confirm(ctx context.Context, orderID uint, merchantUserID string) error
	Complete(ctx context.Context, orderID uint, merchantUserID string) error
	Cancel(ctx context.Context, orderID uint, customerUserID string) error
	ListMerchantOrders(ctx context.Context, ownerUserID string) ([]*dto.OrderWithDetails, error)
	MerchantStats(ctx context.Context, ownerUserID string) (*dto.MerchantStats, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	bagRepo   repository.BagRepository
	orderRepo repository.OrderRepository
}

func NewOrderService(
	db *gorm.DB,
	bagRepo repository.BagRepository,
	orderRepo repository.OrderRepository,
) OrderService {
	return &orderServiceImpl{
		db:        db,
		bagRepo:   bagRepo,
		orderRepo: orderRepo,
	}
}

// Create reserves quantity off a bag and persists the order in one
// transaction. The decrement is a single conditional update, so concurrent
// reservations of the last unit cannot oversell: the loser sees zero rows
// affected and gets an insufficient-quantity error.
func (s *orderServiceImpl) Create(ctx context.Context, customerUserID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	bag, err := s.bagRepo.FindByID(ctx, req.BagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bag %d", ErrNotFound, req.BagID)
		}
		return nil, fmt.Errorf("load bag: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	if !bag.IsActive || bag.PickupDate < today {
		return nil, ErrInsufficientQuantity
	}

	// Total is computed server-side from the bag's unit price; the client's
	// figure is never trusted.
	totalPrice := bag.Price * float64(req.Quantity)

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "pix"
	}

	var created *model.Order
	for attempt := 0; attempt < pickupCodeRetries; attempt++ {
		pickupCode, err := generatePickupCode()
		if err != nil {
			return nil, err
		}

		order := &model.Order{
			BagID:          req.BagID,
			CustomerUserID: customerUserID,
			Quantity:       req.Quantity,
			TotalPrice:     totalPrice,
			Status:         model.OrderStatusPending,
			PaymentMethod:  paymentMethod,
			PickupCode:     pickupCode,
		}

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			ok, err := s.bagRepo.DecrementQuantity(ctx, tx, req.BagID, req.Quantity)
			if err != nil {
				return fmt.Errorf("decrement bag quantity: %w", err)
			}
			if !ok {
				return ErrInsufficientQuantity
			}

			return s.orderRepo.Create(ctx, tx, order)
		})
		if err == nil {
			created = order
			break
		}
		if repository.IsDuplicateKeyError(err) {
			logger.FromContext(ctx).Warn("pickup code collision, retrying",
				zap.String("pickup_code", pickupCode))
			continue
		}
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("exhausted pickup code attempts")
	}

	metrics.OrdersCreatedTotal.Inc()

	return &dto.CreateOrderResponse{
		ID:         created.ID,
		PickupCode: created.PickupCode,
		TotalPrice: created.TotalPrice,
	}, nil
}

func (s *orderServiceImpl) ListMine(ctx context.Context, customerUserID string) ([]*dto.OrderWithDetails, error) {
	return s.orderRepo.ListByCustomer(ctx, customerUserID)
}

// Confirm and Complete are the merchant-side transitions; both verify the
// caller owns the establishment the order's bag belongs to.

func (s *orderServiceImpl) Confirm(ctx context.Context, orderID uint, merchantUserID string) error {
	confirmed := true
	return s.merchantTransition(ctx, orderID, merchantUserID,
		[]string{model.OrderStatusPending}, model.OrderStatusConfirmed, &confirmed)
}

func (s *orderServiceImpl) Complete(ctx context.Context, orderID uint, merchantUserID string) error {
	return s.merchantTransition(ctx, orderID, merchantUserID,
		[]string{model.OrderStatusConfirmed}, model.OrderStatusCompleted, nil)
}

func (s *orderServiceImpl) merchantTransition(ctx context.Context, orderID uint, merchantUserID string, from []string, to string, paymentConfirmed *bool) error {
	row, err := s.orderRepo.FindWithOwner(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return fmt.Errorf("load order: %w", err)
	}

	if row.OwnerUserID != merchantUserID {
		return ErrForbidden
	}

	ok, err := s.orderRepo.TransitionStatus(ctx, nil, orderID, from, to, paymentConfirmed)
	if err != nil {
		return fmt.Errorf("transition order status: %w", err)
	}
	if !ok {
		return ErrInvalidTransition
	}

	return nil
}

// Cancel lets the customer abandon a still-pending order. Inventory is not
// restocked.
func (s *orderServiceImpl) Cancel(ctx context.Context, orderID uint, customerUserID string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return fmt.Errorf("load order: %w", err)
	}

	if order.CustomerUserID != customerUserID {
		return ErrForbidden
	}

	ok, err := s.orderRepo.TransitionStatus(ctx, nil, orderID,
		[]string{model.OrderStatusPending}, model.OrderStatusCancelled, nil)
	if err != nil {
		return fmt.Errorf("transition order status: %w", err)
	}
	if !ok {
		return ErrInvalidTransition
	}

	return nil
}

func (s *orderServiceImpl) ListMerchantOrders(ctx context.Context, ownerUserID string) ([]*dto.OrderWithDetails, error) {
	return s.orderRepo.ListByMerchant(ctx, ownerUserID)
}

func (s *orderServiceImpl) MerchantStats(ctx context.Context, ownerUserID string) (*dto.MerchantStats, error) {
	today := time.Now().Format("2006-01-02")
	return s.orderRepo.MerchantStats(ctx, ownerUserID, today)
}
