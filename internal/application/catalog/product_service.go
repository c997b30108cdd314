package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/marketloop/backend/internal/domain/catalog"
	"github.com/marketloop/backend/internal/domain/shared"
)

// ProductService manages product listings. All mutations here obey the
// seller-only ownership rule; the order lifecycle's stock updates go through
// the repository's privileged path instead.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create lists a new product for the seller
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(sellerID, req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update applies a partial update. Only the owning seller or an admin may update.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, patch UpdateProductRequest, actorID uuid.UUID, isAdmin bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !product.IsOwnedBy(actorID) {
		return nil, shared.ErrForbidden
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
		}
		product.Name = name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Product price cannot be negative")
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Product stock cannot be negative")
		}
		product.Stock = *patch.Stock
	}
	if patch.Active != nil {
		product.Active = *patch.Active
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID returns a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// List returns a newest-first page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// ListBySeller returns a newest-first page of a seller's products
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.ListBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}
