// File: internal/sellerrequest/service.go
package sellerrequest

import (
	"context"
	"fmt"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the interface for seller request business logic.
type Service interface {
	CreateSellerRequest(ctx context.Context, req CreateSellerRequestRequest) (*SellerRequest, error)
	GetSellerRequestByID(ctx context.Context, id string) (*SellerRequest, error)
	ListSellerRequests(ctx context.Context, page, pageSize int) ([]SellerRequest, *common.Pagination, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*SellerRequest, error)
}

// ServiceImplementation implements the seller request Service interface.
type ServiceImplementation struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new seller request service.
func NewService(db *gorm.DB, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		db:     db,
		repo:   NewGORMRepository(db),
		logger: logger,
	}
}

// CreateSellerRequest admits a new seller request. The product row is locked
// for the duration of the check-then-insert, so at most one PENDING request
// per batch can ever be admitted under concurrency.
func (s *ServiceImplementation) CreateSellerRequest(ctx context.Context, req CreateSellerRequestRequest) (*SellerRequest, error) {
	var created *SellerRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := product.NewGORMRepository(tx)
		requestRepo := NewGORMRepository(tx)

		batch, err := productRepo.FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		pending, err := requestRepo.FindPendingByProductID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if pending != nil {
			return common.NewConflictError(
				"A pending seller request already exists for this batch.", pending.ID)
		}

		farmerID := req.FarmerID
		if farmerID == "" {
			farmerID = batch.FarmerID
		}

		created = &SellerRequest{
			ID:             uuid.NewString(),
			ProductID:      req.ProductID,
			FarmerID:       farmerID,
			SellerID:       req.SellerID,
			SellerName:     req.SellerName,
			SellerLocation: req.SellerLocation,
			FarmerPrice:    req.FarmerPrice,
			SellingPrice:   req.SellingPrice,
			Status:         StatusPending,
			CreatedAt:      common.TimestampNow(),
		}
		return requestRepo.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seller request created",
		zap.String("requestID", created.ID),
		zap.String("productID", created.ProductID))
	return created, nil
}

func (s *ServiceImplementation) GetSellerRequestByID(ctx context.Context, id string) (*SellerRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) ListSellerRequests(ctx context.Context, page, pageSize int) ([]SellerRequest, *common.Pagination, error) {
	return s.repo.FindAll(ctx, page, pageSize)
}

// UpdateStatus transitions a pending request to ACCEPTED or REJECTED. Both
// are terminal. Acceptance assigns the seller to the product, fixes the
// farmer-facing price, advances the product status, and appends a journey
// event; all of it in one transaction with the admission lock held.
func (s *ServiceImplementation) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*SellerRequest, error) {
	var updated *SellerRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requestRepo := NewGORMRepository(tx)
		productRepo := product.NewGORMRepository(tx)
		notificationRepo := notification.NewGORMRepository(tx)

		existing, err := requestRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status != StatusPending {
			return common.ErrConflict.WithDetails(
				fmt.Sprintf("Seller request is already %s and cannot be transitioned again.", existing.Status))
		}

		existing.Status = req.Status
		if err := requestRepo.Save(ctx, existing); err != nil {
			return err
		}

		if req.Status == StatusAccepted {
			batch, err := productRepo.FindByIDForUpdate(ctx, existing.ProductID)
			if err != nil {
				return err
			}

			batch.SellerID = existing.SellerID
			batch.SellerName = existing.SellerName
			batch.SellerLocation = existing.SellerLocation
			batch.SellerPrice = existing.SellingPrice
			if existing.FarmerPrice != nil {
				// The farmer-facing price is fixed here; transport
				// events must never overwrite it.
				batch.FarmerPrice = existing.FarmerPrice
			}
			batch.Status = product.StatusSellerAccepted
			batch.Journey = batch.Journey.Append(product.JourneyEvent{
				Status:      string(product.StatusSellerAccepted),
				Timestamp:   common.TimestampNow(),
				Location:    batch.CurrentLocation,
				Description: "Seller accepted for batch",
			})
			if err := productRepo.Save(ctx, batch); err != nil {
				return err
			}

			sellerNotice := notification.New(
				existing.SellerID,
				"Your request to sell this batch has been accepted!",
				notification.TypeInfo,
				batch.ID,
				notification.StatusUnread,
				"",
			)
			if err := notificationRepo.Create(ctx, sellerNotice); err != nil {
				return err
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seller request transitioned",
		zap.String("requestID", updated.ID),
		zap.String("status", string(updated.Status)))
	return updated, nil
}
