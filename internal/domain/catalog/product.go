package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketloop/backend/internal/domain/shared"
)

// Product is a sellable item listed by a seller.
// Stock is decremented when an order is created and restored on cancellation;
// both updates are system-initiated and bypass the seller-only update rule.
type Product struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates a product listing
func NewProduct(sellerID uuid.UUID, name, description string, price decimal.Decimal, stock int64) (*Product, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Seller ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product stock cannot be negative")
	}

	now := time.Now()
	return &Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Stock:       stock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOwnedBy reports whether the product belongs to the given seller
func (p *Product) IsOwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

// HasStock reports whether at least quantity units are available
func (p *Product) HasStock(quantity int64) bool {
	return p.Stock >= quantity
}

// TotalFor returns the server-side total price for a quantity
func (p *Product) TotalFor(quantity int64) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(quantity))
}
