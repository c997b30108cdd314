package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketloop/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	// FindByID returns the order; shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// Create inserts a new order
	Create(ctx context.Context, o *Order) error
	// Save writes the full order state
	Save(ctx context.Context, o *Order) error
	// ListByBuyer returns a newest-first page of a buyer's orders plus the total count
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
}
