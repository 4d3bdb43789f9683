// File: internal/transportrequest/service.go
package transportrequest

import (
	"context"
	"fmt"

	"github.com/Mohit-R-04/FarmToMarket/internal/booking"
	"github.com/Mohit-R-04/FarmToMarket/internal/common"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the interface for transporter request business logic.
type Service interface {
	CreateTransporterRequest(ctx context.Context, req CreateTransporterRequestRequest) (*TransporterRequest, error)
	GetTransporterRequestByID(ctx context.Context, id string) (*TransporterRequest, error)
	ListTransporterRequests(ctx context.Context, page, pageSize int) ([]TransporterRequest, *common.Pagination, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*TransporterRequest, error)
}

// ServiceImplementation implements the transporter request Service interface.
type ServiceImplementation struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new transporter request service.
func NewService(db *gorm.DB, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		db:     db,
		repo:   NewGORMRepository(db),
		logger: logger,
	}
}

// CreateTransporterRequest admits a new transporter request. Requires an
// accepted seller on the batch, no pending transporter request, no active
// booking, and a batch status outside the transport-closed set. The product
// row is locked for the whole check-then-insert.
func (s *ServiceImplementation) CreateTransporterRequest(ctx context.Context, req CreateTransporterRequestRequest) (*TransporterRequest, error) {
	var created *TransporterRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := product.NewGORMRepository(tx)
		requestRepo := NewGORMRepository(tx)
		bookingRepo := booking.NewGORMRepository(tx)

		batch, err := productRepo.FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		if !batch.HasAcceptedSeller() {
			return common.ErrPreconditionFailed.WithDetails(
				"No seller has been accepted for this batch yet. Wait for seller acceptance before requesting a transporter.")
		}

		pending, err := requestRepo.FindPendingByProductID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if pending != nil {
			return common.NewConflictError(
				"A pending transporter request already exists for this batch.", pending.ID)
		}

		if batch.Status.TransportClosed() {
			return common.ErrConflict.WithDetails(
				fmt.Sprintf("Product is already in transport or completed (status: %s).", batch.Status))
		}

		active, err := bookingRepo.FindActiveByBatchID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if active != nil {
			return common.NewConflictError(
				"This batch already has an active transportation booking.", active.ID)
		}

		farmerID := req.FarmerID
		if farmerID == "" {
			farmerID = batch.FarmerID
		}

		created = &TransporterRequest{
			ID:                   uuid.NewString(),
			ProductID:            req.ProductID,
			FarmerID:             farmerID,
			TransporterID:        req.TransporterID,
			SellerID:             batch.SellerID,
			SellerLocation:       batch.SellerLocation,
			FarmerDemandedCharge: req.FarmerDemandedCharge,
			TransportDate:        req.TransportDate,
			Status:               StatusPending,
			CreatedAt:            common.TimestampNow(),
		}
		return requestRepo.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transporter request created",
		zap.String("requestID", created.ID),
		zap.String("productID", created.ProductID))
	return created, nil
}

func (s *ServiceImplementation) GetTransporterRequestByID(ctx context.Context, id string) (*TransporterRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) ListTransporterRequests(ctx context.Context, page, pageSize int) ([]TransporterRequest, *common.Pagination, error) {
	return s.repo.FindAll(ctx, page, pageSize)
}

// UpdateStatus transitions a pending request to ACCEPTED or REJECTED.
// Acceptance spawns the transport booking, books the batch, and notifies the
// farmer, all in one transaction. A request that has already left PENDING
// cannot be accepted again, which closes the double-booking hole in the
// original flow.
func (s *ServiceImplementation) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*TransporterRequest, error) {
	var updated *TransporterRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requestRepo := NewGORMRepository(tx)
		productRepo := product.NewGORMRepository(tx)
		bookingRepo := booking.NewGORMRepository(tx)
		notificationRepo := notification.NewGORMRepository(tx)

		existing, err := requestRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status != StatusPending {
			return common.ErrConflict.WithDetails(
				fmt.Sprintf("Transporter request is already %s and cannot be transitioned again.", existing.Status))
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

			active, err := bookingRepo.FindActiveByBatchID(ctx, existing.ProductID)
			if err != nil {
				return err
			}
			if active != nil {
				return common.NewConflictError(
					"This batch already has an active transportation booking.", active.ID)
			}

			newBooking := &booking.Booking{
				ID:                   uuid.NewString(),
				BatchID:              existing.ProductID,
				FarmerID:             existing.FarmerID,
				TransporterID:        existing.TransporterID,
				FarmerDemandedCharge: existing.FarmerDemandedCharge,
				SelectedSellerID:     existing.SellerID,
				TransportDate:        existing.TransportDate,
				Status:               booking.StatusAccepted,
				CreatedAt:            common.TimestampNow(),
			}
			if err := bookingRepo.Create(ctx, newBooking); err != nil {
				return err
			}

			batch.Status = product.StatusBookedTransport
			batch.TransporterID = existing.TransporterID
			batch.TransporterCharge = existing.FarmerDemandedCharge
			batch.Journey = batch.Journey.Append(product.JourneyEvent{
				Status:      string(product.StatusBookedTransport),
				Timestamp:   common.TimestampNow(),
				Location:    batch.CurrentLocation,
				Description: "Transport booked for batch",
			})
			if err := productRepo.Save(ctx, batch); err != nil {
				return err
			}

			farmerNotice := notification.New(
				existing.FarmerID,
				"Your transporter request has been accepted!",
				notification.TypeInfo,
				newBooking.ID,
				notification.StatusUnread,
				"",
			)
			if err := notificationRepo.Create(ctx, farmerNotice); err != nil {
				return err
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transporter request transitioned",
		zap.String("requestID", updated.ID),
		zap.String("status", string(updated.Status)))
	return updated, nil
}
