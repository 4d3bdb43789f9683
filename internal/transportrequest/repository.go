// File: internal/transportrequest/repository.go
package transportrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for transporter request data operations.
type Repository interface {
	Create(ctx context.Context, request *TransporterRequest) error
	FindByID(ctx context.Context, id string) (*TransporterRequest, error)
	FindAll(ctx context.Context, page, pageSize int) ([]TransporterRequest, *common.Pagination, error)
	// FindPendingByProductID returns the batch's pending request, or nil.
	FindPendingByProductID(ctx context.Context, productID string) (*TransporterRequest, error)
	FindIDsByProductID(ctx context.Context, productID string) ([]string, error)
	Save(ctx context.Context, request *TransporterRequest) error
	DeleteByProductID(ctx context.Context, productID string) (int64, error)
	// DeleteWhereProductMissing removes requests whose product no longer
	// exists; the subquery runs in the same statement as the delete.
	DeleteWhereProductMissing(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM transporter request repository. Pass a
// transaction handle to scope all operations to that transaction.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, request *TransporterRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create transporter request: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*TransporterRequest, error) {
	var request TransporterRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Transporter request not found.")
		}
		return nil, err
	}
	return &request, nil
}

func (r *gormRepository) FindAll(ctx context.Context, page, pageSize int) ([]TransporterRequest, *common.Pagination, error) {
	var requests []TransporterRequest
	var total int64

	if err := r.db.WithContext(ctx).Model(&TransporterRequest{}).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting transporter requests failed: %w", err)
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
		Find(&requests).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching transporter requests failed: %w", err)
	}
	return requests, pagination, nil
}

func (r *gormRepository) FindPendingByProductID(ctx context.Context, productID string) (*TransporterRequest, error) {
	var request TransporterRequest
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, StatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding pending transporter request for product %s failed: %w", productID, err)
	}
	return &request, nil
}

func (r *gormRepository) FindIDsByProductID(ctx context.Context, productID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&TransporterRequest{}).
		Where("product_id = ?", productID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing transporter request ids for product %s failed: %w", productID, err)
	}
	return ids, nil
}

func (r *gormRepository) Save(ctx context.Context, request *TransporterRequest) error {
	if err := r.db.WithContext(ctx).Save(request).Error; err != nil {
		return fmt.Errorf("failed to save transporter request: %w", err)
	}
	return nil
}

func (r *gormRepository) DeleteByProductID(ctx context.Context, productID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&TransporterRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete transporter requests for product %s: %w", productID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteWhereProductMissing(ctx context.Context) (int64, error) {
	sub := r.db.Table("products").Select("id")
	result := r.db.WithContext(ctx).Where("product_id NOT IN (?)", sub).Delete(&TransporterRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned transporter requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&TransporterRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete transporter requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}
