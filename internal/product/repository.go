// File: internal/product/repository.go
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for product data operations.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// FindByIDForUpdate locks the product row for the duration of the
	// surrounding transaction, serializing admission checks per batch.
	FindByIDForUpdate(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context, page, pageSize int) ([]Product, *common.Pagination, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM product repository. Pass a transaction
// handle to scope all operations to that transaction.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Product not found.")
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) FindByIDForUpdate(ctx context.Context, id string) (*Product, error) {
	var product Product
	query := r.db.WithContext(ctx)
	// SQLite serializes writers on its own and rejects FOR UPDATE.
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Product not found.")
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) FindAll(ctx context.Context, page, pageSize int) ([]Product, *common.Pagination, error) {
	var products []Product
	var total int64

	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting products failed: %w", err)
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
		Find(&products).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching products failed: %w", err)
	}
	return products, pagination, nil
}

func (r *gormRepository) Save(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete product: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&Product{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete products: %w", result.Error)
	}
	return result.RowsAffected, nil
}
