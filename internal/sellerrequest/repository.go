// File: internal/sellerrequest/repository.go
package sellerrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for seller request data operations.
type Repository interface {
	Create(ctx context.Context, request *SellerRequest) error
	FindByID(ctx context.Context, id string) (*SellerRequest, error)
	FindAll(ctx context.Context, page, pageSize int) ([]SellerRequest, *common.Pagination, error)
	// FindPendingByProductID returns the batch's pending request, or nil.
	FindPendingByProductID(ctx context.Context, productID string) (*SellerRequest, error)
	FindIDsByProductID(ctx context.Context, productID string) ([]string, error)
	Save(ctx context.Context, request *SellerRequest) error
	DeleteByProductID(ctx context.Context, productID string) (int64, error)
	// DeleteWhereProductMissing removes requests whose product no longer
	// exists; the subquery runs in the same statement as the delete.
	DeleteWhereProductMissing(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM seller request repository. Pass a
// transaction handle to scope all operations to that transaction.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, request *SellerRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create seller request: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*SellerRequest, error) {
	var request SellerRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Seller request not found.")
		}
		return nil, err
	}
	return &request, nil
}

func (r *gormRepository) FindAll(ctx context.Context, page, pageSize int) ([]SellerRequest, *common.Pagination, error) {
	var requests []SellerRequest
	var total int64

	if err := r.db.WithContext(ctx).Model(&SellerRequest{}).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting seller requests failed: %w", err)
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
		return nil, nil, fmt.Errorf("fetching seller requests failed: %w", err)
	}
	return requests, pagination, nil
}

func (r *gormRepository) FindPendingByProductID(ctx context.Context, productID string) (*SellerRequest, error) {
	var request SellerRequest
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, StatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding pending seller request for product %s failed: %w", productID, err)
	}
	return &request, nil
}

func (r *gormRepository) FindIDsByProductID(ctx context.Context, productID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&SellerRequest{}).
		Where("product_id = ?", productID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing seller request ids for product %s failed: %w", productID, err)
	}
	return ids, nil
}

func (r *gormRepository) Save(ctx context.Context, request *SellerRequest) error {
	if err := r.db.WithContext(ctx).Save(request).Error; err != nil {
		return fmt.Errorf("failed to save seller request: %w", err)
	}
	return nil
}

func (r *gormRepository) DeleteByProductID(ctx context.Context, productID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&SellerRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete seller requests for product %s: %w", productID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteWhereProductMissing(ctx context.Context) (int64, error) {
	sub := r.db.Table("products").Select("id")
	result := r.db.WithContext(ctx).Where("product_id NOT IN (?)", sub).Delete(&SellerRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned seller requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&SellerRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete seller requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}
