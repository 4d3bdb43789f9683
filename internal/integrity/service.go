// File: internal/integrity/service.go

// Package integrity owns the operations that span every table: cascading
// product deletion, the orphan sweep, and the full data reset. No foreign key
// constraints exist between tables, so referential hygiene is enforced here.
package integrity

import (
	"context"

	"github.com/Mohit-R-04/FarmToMarket/internal/booking"
	"github.com/Mohit-R-04/FarmToMarket/internal/common"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"
	"github.com/Mohit-R-04/FarmToMarket/internal/sellerrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/transportrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CascadeResult reports what a cascading product deletion removed.
type CascadeResult struct {
	ProductID                  string `json:"productId"`
	DeletedSellerRequests      int64  `json:"deletedSellerRequests"`
	DeletedTransporterRequests int64  `json:"deletedTransporterRequests"`
	DeletedBookings            int64  `json:"deletedBookings"`
	DeletedNotifications       int64  `json:"deletedNotifications"`
}

// SweepResult reports what an orphan sweep removed.
type SweepResult struct {
	DeletedSellerRequests      int64 `json:"deletedSellerRequests"`
	DeletedTransporterRequests int64 `json:"deletedTransporterRequests"`
	DeletedBookings            int64 `json:"deletedBookings"`
	DeletedNotifications       int64 `json:"deletedNotifications"`
}

// Total returns the number of rows removed by the sweep.
func (r SweepResult) Total() int64 {
	return r.DeletedSellerRequests + r.DeletedTransporterRequests + r.DeletedBookings + r.DeletedNotifications
}

// ResetResult reports what a full data reset removed, per table.
type ResetResult struct {
	TotalRecordsDeleted int64            `json:"totalRecordsDeleted"`
	DeletedByTable      map[string]int64 `json:"deletedByTable"`
}

// Service defines the interface for cross-table integrity operations.
type Service interface {
	DeleteProduct(ctx context.Context, productID string) (*CascadeResult, error)
	CleanupOrphans(ctx context.Context) (*SweepResult, error)
	ClearAllData(ctx context.Context) (*ResetResult, error)
}

// ServiceImplementation implements the integrity Service interface.
type ServiceImplementation struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{db: db, logger: logger}
}

// integrityError surfaces store-level faults as INTEGRITY_FAILURE. Business
// errors raised inside the transaction pass through unchanged.
func integrityError(err error) error {
	if _, ok := common.IsAPIError(err); ok {
		return err
	}
	return common.ErrIntegrityFailure.WithDetails(err.Error())
}

// DeleteProduct removes a batch together with every row that references it:
// seller requests, transporter requests, bookings, and the notifications
// pointing at any of them. The whole cascade commits or rolls back as one
// transaction, so a failed step leaves no partial deletion behind.
func (s *ServiceImplementation) DeleteProduct(ctx context.Context, productID string) (*CascadeResult, error) {
	result := &CascadeResult{ProductID: productID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := product.NewGORMRepository(tx)
		sellerRepo := sellerrequest.NewGORMRepository(tx)
		transporterRepo := transportrequest.NewGORMRepository(tx)
		bookingRepo := booking.NewGORMRepository(tx)
		notificationRepo := notification.NewGORMRepository(tx)

		if _, err := productRepo.FindByIDForUpdate(ctx, productID); err != nil {
			return err
		}

		// Collect referencing ids before the deletes so notifications hanging
		// off requests and bookings can be removed too.
		sellerRequestIDs, err := sellerRepo.FindIDsByProductID(ctx, productID)
		if err != nil {
			return err
		}
		transporterRequestIDs, err := transporterRepo.FindIDsByProductID(ctx, productID)
		if err != nil {
			return err
		}
		bookingIDs, err := bookingRepo.FindIDsByBatchID(ctx, productID)
		if err != nil {
			return err
		}

		if result.DeletedSellerRequests, err = sellerRepo.DeleteByProductID(ctx, productID); err != nil {
			return err
		}
		if result.DeletedTransporterRequests, err = transporterRepo.DeleteByProductID(ctx, productID); err != nil {
			return err
		}
		if result.DeletedBookings, err = bookingRepo.DeleteByBatchID(ctx, productID); err != nil {
			return err
		}

		relatedIDs := make([]string, 0, 1+len(sellerRequestIDs)+len(transporterRequestIDs)+len(bookingIDs))
		relatedIDs = append(relatedIDs, productID)
		relatedIDs = append(relatedIDs, sellerRequestIDs...)
		relatedIDs = append(relatedIDs, transporterRequestIDs...)
		relatedIDs = append(relatedIDs, bookingIDs...)
		if result.DeletedNotifications, err = notificationRepo.DeleteByRelatedEntityIDs(ctx, relatedIDs); err != nil {
			return err
		}

		_, err = productRepo.Delete(ctx, productID)
		return err
	})
	if err != nil {
		return nil, integrityError(err)
	}

	s.logger.Info("Product deleted with cascade",
		zap.String("productID", productID),
		zap.Int64("sellerRequests", result.DeletedSellerRequests),
		zap.Int64("transporterRequests", result.DeletedTransporterRequests),
		zap.Int64("bookings", result.DeletedBookings),
		zap.Int64("notifications", result.DeletedNotifications))
	return result, nil
}

// CleanupOrphans removes every row whose product, or for notifications whose
// related entity, no longer exists. Each delete carries its existence check as
// a subquery in the same statement, so a concurrently created row is never
// swept. Running the sweep twice in a row deletes nothing the second time.
func (s *ServiceImplementation) CleanupOrphans(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if result.DeletedSellerRequests, err = sellerrequest.NewGORMRepository(tx).DeleteWhereProductMissing(ctx); err != nil {
			return err
		}
		if result.DeletedTransporterRequests, err = transportrequest.NewGORMRepository(tx).DeleteWhereProductMissing(ctx); err != nil {
			return err
		}
		if result.DeletedBookings, err = booking.NewGORMRepository(tx).DeleteWhereProductMissing(ctx); err != nil {
			return err
		}
		// Notifications go last: bookings and requests deleted above must not
		// keep their notifications alive through this sweep.
		if result.DeletedNotifications, err = notification.NewGORMRepository(tx).DeleteWhereEntityMissing(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, integrityError(err)
	}

	if result.Total() > 0 {
		s.logger.Info("Orphan sweep removed rows",
			zap.Int64("sellerRequests", result.DeletedSellerRequests),
			zap.Int64("transporterRequests", result.DeletedTransporterRequests),
			zap.Int64("bookings", result.DeletedBookings),
			zap.Int64("notifications", result.DeletedNotifications))
	}
	return result, nil
}

// ClearAllData empties every table and reports the per-table counts.
func (s *ServiceImplementation) ClearAllData(ctx context.Context) (*ResetResult, error) {
	counts := map[string]int64{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if counts["bookings"], err = booking.NewGORMRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if counts["notifications"], err = notification.NewGORMRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if counts["sellerRequests"], err = sellerrequest.NewGORMRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if counts["transporterRequests"], err = transportrequest.NewGORMRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if counts["products"], err = product.NewGORMRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if counts["users"], err = user.NewGORMRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, integrityError(err)
	}

	result := &ResetResult{DeletedByTable: counts}
	for _, n := range counts {
		result.TotalRecordsDeleted += n
	}

	s.logger.Warn("All data cleared", zap.Int64("totalRecordsDeleted", result.TotalRecordsDeleted))
	return result, nil
}
