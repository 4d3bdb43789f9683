// File: internal/product/service.go
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for product-related business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]Product, *common.Pagination, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
}

// ServiceImplementation implements the product Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new product service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

// CreateProduct registers a new batch. The journey is seeded with a CREATED
// event at the production location.
func (s *ServiceImplementation) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	now := common.TimestampNow()
	id := uuid.NewString()

	newProduct := &Product{
		ID:                 id,
		FarmerID:           req.FarmerID,
		FarmerName:         req.FarmerName,
		ProductName:        req.ProductName,
		Quantity:           req.Quantity,
		Unit:               req.Unit,
		ProductionLocation: req.ProductionLocation,
		CurrentLocation:    req.CurrentLocation,
		QRCode:             BatchReference(req.ProductName, id),
		Status:             StatusCreated,
		FarmerPrice:        req.FarmerPrice,
		CreatedAt:          now,
		Journey: Journey{{
			Status:      string(StatusCreated),
			Timestamp:   now,
			Location:    req.ProductionLocation,
			Description: "Batch registered by farmer",
		}},
	}
	if newProduct.CurrentLocation == "" {
		newProduct.CurrentLocation = req.ProductionLocation
	}

	if err := s.repo.Create(ctx, newProduct); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("productID", newProduct.ID),
		zap.String("farmerID", newProduct.FarmerID))
	return newProduct, nil
}

func (s *ServiceImplementation) GetProductByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) ListProducts(ctx context.Context, page, pageSize int) ([]Product, *common.Pagination, error) {
	return s.repo.FindAll(ctx, page, pageSize)
}

// UpdateProduct applies a typed partial update. Fields absent from the patch
// are left untouched; seller/transporter assignments and the journey are only
// ever mutated by lifecycle transitions, never through this path.
func (s *ServiceImplementation) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProductName != nil {
		existing.ProductName = *req.ProductName
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		existing.Unit = *req.Unit
	}
	if req.ProductionLocation != nil {
		existing.ProductionLocation = *req.ProductionLocation
	}
	if req.CurrentLocation != nil {
		existing.CurrentLocation = *req.CurrentLocation
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.SellerPrice != nil {
		existing.SellerPrice = req.SellerPrice
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		s.logger.Error("Failed to update product", zap.String("productID", id), zap.Error(err))
		return nil, err
	}
	return existing, nil
}

// BatchReference builds the human-readable reference embedded in the batch QR
// payload, e.g. "FTM-organic-tomatoes-1a2b3c4d".
func BatchReference(productName, id string) string {
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("FTM-%s-%s", slug.Make(productName), short)
}
