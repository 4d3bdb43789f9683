// File: internal/booking/service.go
package booking

import (
	"context"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the interface for booking-related business logic.
type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context, page, pageSize int) ([]Booking, *common.Pagination, error)
	UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*Booking, error)
	RequestCancellation(ctx context.Context, id string, req RequestCancellationPayload) (*Booking, error)
	RespondCancellation(ctx context.Context, id string, req RespondCancellationPayload) (*Booking, error)
	MarkTransported(ctx context.Context, id string, req MarkTransportedPayload) (*Booking, error)
}

// ServiceImplementation implements the booking Service interface. Every
// lifecycle transition runs inside a single database transaction so the
// booking, the linked product, and the emitted notifications change together
// or not at all.
type ServiceImplementation struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new booking service.
func NewService(db *gorm.DB, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		db:     db,
		repo:   NewGORMRepository(db),
		logger: logger,
	}
}

// CreateBooking admits a booking directly. The active-booking check and the
// insert are one transaction, with the product row locked so two concurrent
// admissions for the same batch serialize.
func (s *ServiceImplementation) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	var created *Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := product.NewGORMRepository(tx)
		bookingRepo := NewGORMRepository(tx)

		if _, err := productRepo.FindByIDForUpdate(ctx, req.BatchID); err != nil {
			return err
		}

		active, err := bookingRepo.FindActiveByBatchID(ctx, req.BatchID)
		if err != nil {
			return err
		}
		if active != nil {
			return common.NewConflictError(
				"An active transportation booking already exists for this batch.", active.ID)
		}

		created = &Booking{
			ID:                   uuid.NewString(),
			BatchID:              req.BatchID,
			FarmerID:             req.FarmerID,
			TransporterID:        req.TransporterID,
			FarmerDemandedCharge: req.FarmerDemandedCharge,
			SelectedSellerID:     req.SelectedSellerID,
			TransportDate:        req.TransportDate,
			Status:               StatusPending,
			CreatedAt:            common.TimestampNow(),
		}
		return bookingRepo.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("bookingID", created.ID),
		zap.String("batchID", created.BatchID))
	return created, nil
}

func (s *ServiceImplementation) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) ListBookings(ctx context.Context, page, pageSize int) ([]Booking, *common.Pagination, error) {
	return s.repo.FindAll(ctx, page, pageSize)
}

// UpdateBooking applies a typed partial update; absent fields stay untouched.
func (s *ServiceImplementation) UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*Booking, error) {
	var updated *Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingRepo := NewGORMRepository(tx)

		existing, err := bookingRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.TransporterID != nil {
			existing.TransporterID = *req.TransporterID
		}
		if req.TransporterCharge != nil {
			existing.TransporterCharge = req.TransporterCharge
		}
		if req.TransportDate != nil {
			existing.TransportDate = *req.TransportDate
		}
		if req.Kilometers != nil {
			existing.Kilometers = req.Kilometers
		}

		updated = existing
		return bookingRepo.Save(ctx, existing)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RequestCancellation opens the cancellation handshake from the transporter
// side. Re-requesting while a handshake is already pending is rejected.
func (s *ServiceImplementation) RequestCancellation(ctx context.Context, id string, req RequestCancellationPayload) (*Booking, error) {
	var updated *Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingRepo := NewGORMRepository(tx)
		notificationRepo := notification.NewGORMRepository(tx)

		existing, err := bookingRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.CancellationStatus == CancellationPending {
			return common.NewConflictError(
				"A cancellation request is already pending for this booking.", existing.ID)
		}

		existing.CancellationReason = req.Reason
		existing.CancellationStatus = CancellationPending
		if err := bookingRepo.Save(ctx, existing); err != nil {
			return err
		}

		farmerNotice := notification.New(
			existing.FarmerID,
			"Transporter requested cancellation: "+req.Reason,
			notification.TypeCancellationRequest,
			existing.ID,
			notification.StatusActionRequired,
			notification.ActionPending,
		)
		if err := notificationRepo.Create(ctx, farmerNotice); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancellation requested",
		zap.String("bookingID", updated.ID),
		zap.String("reason", req.Reason))
	return updated, nil
}

// RespondCancellation closes the handshake from the farmer side. On ACCEPT
// the booking is cancelled; on REJECT it stays active and transport must
// proceed. Every CANCELLATION_REQUEST notification for the booking is
// fanned out to ACTION_TAKEN in the same transaction.
func (s *ServiceImplementation) RespondCancellation(ctx context.Context, id string, req RespondCancellationPayload) (*Booking, error) {
	var updated *Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingRepo := NewGORMRepository(tx)
		notificationRepo := notification.NewGORMRepository(tx)

		existing, err := bookingRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.CancellationStatus != CancellationPending {
			return common.ErrPreconditionFailed.WithDetails("No pending cancellation request exists for this booking.")
		}

		action := CancellationStatus(req.Action)
		existing.CancellationStatus = action

		var message string
		if action == CancellationAccept {
			existing.Status = StatusCancelled
			message = "Your cancellation request was accepted."
		} else {
			message = "Your cancellation request was REJECTED. You must proceed with transport."
		}

		if err := bookingRepo.Save(ctx, existing); err != nil {
			return err
		}

		transporterNotice := notification.New(
			existing.TransporterID,
			message,
			notification.TypeAlert,
			existing.ID,
			notification.StatusUnread,
			"",
		)
		if err := notificationRepo.Create(ctx, transporterNotice); err != nil {
			return err
		}

		if _, err := notificationRepo.MarkActionTaken(ctx, existing.ID, notification.ActionStatus(req.Action)); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancellation responded",
		zap.String("bookingID", updated.ID),
		zap.String("action", req.Action))
	return updated, nil
}

// MarkTransported completes the booking: the booking, the linked product
// (status, location, journey) and the farmer's notification are updated in
// one transaction. Only an active booking can be completed; a repeat call
// is a conflict. The farmer price fixed at seller acceptance is never
// touched here.
func (s *ServiceImplementation) MarkTransported(ctx context.Context, id string, req MarkTransportedPayload) (*Booking, error) {
	var updated *Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingRepo := NewGORMRepository(tx)
		productRepo := product.NewGORMRepository(tx)
		notificationRepo := notification.NewGORMRepository(tx)

		existing, err := bookingRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !existing.Status.Active() {
			return common.ErrConflict.WithDetails(
				"Booking is already " + string(existing.Status) + " and cannot be marked transported.")
		}

		existing.Status = StatusTransported
		if req.Kilometers != nil {
			existing.Kilometers = req.Kilometers
		}
		if err := bookingRepo.Save(ctx, existing); err != nil {
			return err
		}

		batch, err := productRepo.FindByIDForUpdate(ctx, existing.BatchID)
		if err != nil {
			return err
		}

		batch.Status = product.StatusAtSeller
		batch.CurrentLocation = batch.SellerLocation
		batch.Journey = batch.Journey.Append(product.JourneyEvent{
			Status:      string(product.StatusTransported),
			Timestamp:   common.TimestampNow(),
			Location:    batch.SellerLocation,
			Description: "Product transported to seller location",
		})
		if err := productRepo.Save(ctx, batch); err != nil {
			return err
		}

		farmerNotice := notification.New(
			existing.FarmerID,
			"Your product has been transported successfully.",
			notification.TypeInfo,
			existing.ID,
			notification.StatusUnread,
			"",
		)
		if err := notificationRepo.Create(ctx, farmerNotice); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking marked transported",
		zap.String("bookingID", updated.ID),
		zap.String("batchID", updated.BatchID))
	return updated, nil
}
