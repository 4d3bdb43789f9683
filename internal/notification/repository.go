// File: internal/notification/repository.go
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for notification data operations.
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)
	GetByUserID(ctx context.Context, userID string, page, pageSize int) ([]Notification, *common.Pagination, error)
	MarkAsRead(ctx context.Context, id string) (*Notification, error)
	// MarkActionTaken transitions every CANCELLATION_REQUEST notification
	// referencing the entity to ACTION_TAKEN with the given outcome. This is
	// a fan-out update: several stale request notifications may exist for
	// one booking.
	MarkActionTaken(ctx context.Context, relatedEntityID string, action ActionStatus) (int64, error)
	DeleteByRelatedEntityIDs(ctx context.Context, relatedEntityIDs []string) (int64, error)
	// DeleteWhereEntityMissing removes notifications whose related entity no
	// longer exists in any of the referenced tables. Notifications without a
	// related entity are kept.
	DeleteWhereEntityMissing(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM notification repository. Pass a
// transaction handle to scope all operations to that transaction.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, notification *Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var notification Notification
	err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Notification not found.")
		}
		return nil, err
	}
	return &notification, nil
}

// GetByUserID retrieves a paginated list of a user's notifications, newest first.
func (r *gormRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int) ([]Notification, *common.Pagination, error) {
	var notifications []Notification
	var total int64

	if err := r.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting notifications for user %s failed: %w", userID, err)
	}

	pagination := common.NewPagination(total, page, pageSize)
	offset := (page - 1) * pageSize
	if page <= 0 {
		offset = 0
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching notifications for user %s failed: %w", userID, err)
	}
	return notifications, pagination, nil
}

func (r *gormRepository) MarkAsRead(ctx context.Context, id string) (*Notification, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Status = StatusRead
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification %s as read: %w", id, err)
	}
	return existing, nil
}

func (r *gormRepository) MarkActionTaken(ctx context.Context, relatedEntityID string, action ActionStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Notification{}).
		Where("related_entity_id = ? AND type = ?", relatedEntityID, TypeCancellationRequest).
		Updates(map[string]interface{}{
			"status":        StatusActionTaken,
			"action_status": action,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications for %s as action taken: %w", relatedEntityID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteByRelatedEntityIDs(ctx context.Context, relatedEntityIDs []string) (int64, error) {
	if len(relatedEntityIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("related_entity_id IN ?", relatedEntityIDs).
		Delete(&Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteWhereEntityMissing(ctx context.Context) (int64, error) {
	products := r.db.Table("products").Select("id")
	bookings := r.db.Table("bookings").Select("id")
	sellerRequests := r.db.Table("seller_requests").Select("id")
	transporterRequests := r.db.Table("transporter_requests").Select("id")

	result := r.db.WithContext(ctx).
		Where("related_entity_id <> ''").
		Where("related_entity_id NOT IN (?)", products).
		Where("related_entity_id NOT IN (?)", bookings).
		Where("related_entity_id NOT IN (?)", sellerRequests).
		Where("related_entity_id NOT IN (?)", transporterRequests).
		Delete(&Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}
