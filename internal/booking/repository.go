// File: internal/booking/repository.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for booking data operations.
type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	FindAll(ctx context.Context, page, pageSize int) ([]Booking, *common.Pagination, error)
	// FindActiveByBatchID returns the booking holding the batch's active slot
	// (status PENDING, ACCEPTED, or PICKED_UP), or nil if the slot is free.
	FindActiveByBatchID(ctx context.Context, batchID string) (*Booking, error)
	FindIDsByBatchID(ctx context.Context, batchID string) ([]string, error)
	Save(ctx context.Context, booking *Booking) error
	DeleteByBatchID(ctx context.Context, batchID string) (int64, error)
	// DeleteWhereProductMissing removes bookings whose batch no longer
	// exists. The products subquery is evaluated in the same statement, so
	// a batch created concurrently is never swept.
	DeleteWhereProductMissing(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM booking repository. Pass a transaction
// handle to scope all operations to that transaction.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, booking *Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Booking not found.")
		}
		return nil, err
	}
	return &booking, nil
}

func (r *gormRepository) FindAll(ctx context.Context, page, pageSize int) ([]Booking, *common.Pagination, error) {
	var bookings []Booking
	var total int64

	if err := r.db.WithContext(ctx).Model(&Booking{}).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting bookings failed: %w", err)
	}

	pagination := common.NewPagination(total, page, pageSize)
	offset := (page - 1) * pageSize
	if page <= 0 {
		offset = 0
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching bookings failed: %w", err)
	}
	return bookings, pagination, nil
}

func (r *gormRepository) FindActiveByBatchID(ctx context.Context, batchID string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Where("batch_id = ? AND status IN ?", batchID, ActiveStatuses).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding active booking for batch %s failed: %w", batchID, err)
	}
	return &booking, nil
}

func (r *gormRepository) FindIDsByBatchID(ctx context.Context, batchID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("batch_id = ?", batchID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing booking ids for batch %s failed: %w", batchID, err)
	}
	return ids, nil
}

func (r *gormRepository) Save(ctx context.Context, booking *Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

func (r *gormRepository) DeleteByBatchID(ctx context.Context, batchID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Delete(&Booking{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete bookings for batch %s: %w", batchID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteWhereProductMissing(ctx context.Context) (int64, error) {
	sub := r.db.Table("products").Select("id")
	result := r.db.WithContext(ctx).Where("batch_id NOT IN (?)", sub).Delete(&Booking{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned bookings: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&Booking{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", result.Error)
	}
	return result.RowsAffected, nil
}
