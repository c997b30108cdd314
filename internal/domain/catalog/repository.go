package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketloop/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByID returns the product; shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// Create inserts a new product
	Create(ctx context.Context, p *Product) error
	// Save writes the full product state
	Save(ctx context.Context, p *Product) error
	// List returns a newest-first page of products plus the total count
	List(ctx context.Context, filter shared.Filter) ([]Product, int64, error)
	// ListBySeller returns a newest-first page of a seller's products plus the total count
	ListBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
	// AdjustStock applies a signed stock delta. This is the privileged,
	// system-initiated update used by the order lifecycle; it bypasses the
	// seller-only update rule. Returns shared.ErrNotFound if the product is absent.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int64) error
}
