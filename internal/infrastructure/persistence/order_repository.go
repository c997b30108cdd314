package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketloop/backend/internal/domain/shared"
	"github.com/marketloop/backend/internal/domain/trade"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Create inserts a new order
func (r *GormOrderRepository) Create(ctx context.Context, o *trade.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save writes the full order state
func (r *GormOrderRepository) Save(ctx context.Context, o *trade.Order) error {
	o.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":           o.Status,
			"shipping_address": o.ShippingAddress,
			"updated_at":       o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByBuyer returns a page of the buyer's orders plus the total count
func (r *GormOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]trade.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&trade.Order{}).Where("buyer_id = ?", buyerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []trade.Order
	err := query.
		Order(orderClause(filter, orderSortFields)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

var orderSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"status":      true,
	"total_price": true,
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
