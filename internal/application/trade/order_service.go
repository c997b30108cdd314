package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	rankingapp "github.com/marketloop/backend/internal/application/ranking"
	"github.com/marketloop/backend/internal/domain/ranking"
	"github.com/marketloop/backend/internal/domain/shared"
	"github.com/marketloop/backend/internal/domain/trade"
)

// Seller score deltas applied when an order reaches a terminal state.
// Sales deltas are a fraction of the order total.
const (
	completedSalesRate      = 0.10
	canceledSalesRate       = -0.05
	completedReputationGain = 5.0
	canceledReputationLoss  = -10.0
)

// priceTolerance is the maximum accepted difference between the client's
// submitted total and the server-side total.
var priceTolerance = decimal.NewFromFloat(0.01)

// OrderService manages the order lifecycle: creation against live stock and
// price, status transitions, cancellation with stock restoration, and the
// best-effort seller score side effects.
type OrderService struct {
	scope     TransactionScope
	orderRepo trade.OrderRepository
	rankings  rankingapp.Adjuster
	log       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, orderRepo trade.OrderRepository, rankings rankingapp.Adjuster, log *zap.Logger) *OrderService {
	return &OrderService{
		scope:     scope,
		orderRepo: orderRepo,
		rankings:  rankings,
		log:       log,
	}
}

// Create validates stock and price against the live product, creates the
// order at status pending, and decrements the product stock. Both writes run
// in one transaction; a failed validation leaves stock untouched. The stock
// update is system-initiated and bypasses the seller-only update rule.
func (s *OrderService) Create(ctx context.Context, buyerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	var order *trade.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.Active {
			return shared.NewDomainError("INVALID_STATE", "Product is not active")
		}
		if !product.HasStock(req.Quantity) {
			return shared.ErrInsufficientStock
		}

		serverTotal := product.TotalFor(req.Quantity)
		if serverTotal.Sub(req.TotalPrice).Abs().GreaterThan(priceTolerance) {
			return shared.ErrPriceMismatch
		}

		order, err = trade.NewOrder(buyerID, product.SellerID, product.ID, req.Quantity, serverTotal)
		if err != nil {
			return err
		}
		if req.ShippingAddress != "" {
			order.ShippingAddress = req.ShippingAddress
		}

		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return err
		}
		return repos.ProductRepo().AdjustStock(ctx, product.ID, -req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// UpdateStatus moves an order along the status state machine. Non-admin
// sellers may only target processing, shipped, or completed; non-admin buyers
// may only target canceled. Completion and cancellation trigger the seller
// score side effects.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target trade.OrderStatus, actorID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && !order.IsParty(actorID) {
		return nil, shared.ErrForbidden
	}
	if !isAdmin && !roleAllowsTarget(order, actorID, target) {
		return nil, shared.ErrForbidden
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}

	if target == trade.OrderStatusCanceled {
		if err := s.persistCancellation(ctx, order); err != nil {
			return nil, err
		}
	} else {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	switch target {
	case trade.OrderStatusCompleted:
		s.adjustSellerScores(ctx, order, actorID,
			order.TotalPrice.Mul(decimal.NewFromFloat(completedSalesRate)).InexactFloat64(),
			completedReputationGain)
	case trade.OrderStatusCanceled:
		s.adjustSellerScores(ctx, order, actorID,
			order.TotalPrice.Mul(decimal.NewFromFloat(canceledSalesRate)).InexactFloat64(),
			canceledReputationLoss)
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// Cancel cancels a pending order and restores the product stock. Unlike a
// plain status update to canceled, cancellation requires the order to still
// be pending.
func (s *OrderService) Cancel(ctx context.Context, orderID, actorID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != trade.OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Only pending orders can be canceled")
	}
	if !isAdmin && !order.IsParty(actorID) {
		return nil, shared.ErrForbidden
	}
	if !isAdmin && !roleAllowsTarget(order, actorID, trade.OrderStatusCanceled) {
		return nil, shared.ErrForbidden
	}

	if err := order.TransitionTo(trade.OrderStatusCanceled); err != nil {
		return nil, err
	}
	if err := s.persistCancellation(ctx, order); err != nil {
		return nil, err
	}

	s.adjustSellerScores(ctx, order, actorID,
		order.TotalPrice.Mul(decimal.NewFromFloat(canceledSalesRate)).InexactFloat64(),
		canceledReputationLoss)

	resp := toOrderResponse(order)
	return &resp, nil
}

// UpdateDetails applies non-status fields to an order. Only the buyer or an
// admin may update details, and a completed order is frozen for non-admins.
func (s *OrderService) UpdateDetails(ctx context.Context, orderID uuid.UUID, patch UpdateOrderRequest, actorID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.BuyerID != actorID {
		return nil, shared.ErrForbidden
	}
	if order.Status == trade.OrderStatusCompleted && !isAdmin {
		return nil, shared.NewDomainError("INVALID_STATE", "Completed orders cannot be updated")
	}

	if patch.ShippingAddress != nil {
		order.ShippingAddress = *patch.ShippingAddress
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// GetByID returns an order visible to its buyer, its seller, or an admin
func (s *OrderService) GetByID(ctx context.Context, orderID, actorID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !order.IsParty(actorID) {
		return nil, shared.ErrForbidden
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// ListByBuyer returns a newest-first page of the buyer's orders
func (s *OrderService) ListByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.ListByBuyer(ctx, buyerID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// persistCancellation writes the canceled order and restores the product
// stock in one transaction, mirroring the decrement at creation.
func (s *OrderService) persistCancellation(ctx context.Context, order *trade.Order) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return repos.ProductRepo().AdjustStock(ctx, order.ProductID, order.Quantity)
	})
}

// adjustSellerScores applies the sales and reputation deltas for the seller.
// The order status has already been written; scoring failures are logged and
// swallowed so the status update still succeeds.
func (s *OrderService) adjustSellerScores(ctx context.Context, order *trade.Order, actorID uuid.UUID, salesDelta, reputationDelta float64) {
	if err := s.rankings.Adjust(ctx, order.SellerID, ranking.CategorySales, salesDelta, &actorID); err != nil {
		s.log.Warn("Sales score adjustment failed",
			zap.String("order_id", order.ID.String()),
			zap.String("seller_id", order.SellerID.String()),
			zap.Float64("delta", salesDelta),
			zap.Error(err),
		)
	}
	if err := s.rankings.Adjust(ctx, order.SellerID, ranking.CategoryReputation, reputationDelta, &actorID); err != nil {
		s.log.Warn("Reputation score adjustment failed",
			zap.String("order_id", order.ID.String()),
			zap.String("seller_id", order.SellerID.String()),
			zap.Float64("delta", reputationDelta),
			zap.Error(err),
		)
	}
}

// roleAllowsTarget enforces the per-role target restriction: a seller may
// only move an order forward (processing, shipped, completed) and a buyer may
// only cancel, regardless of whether the raw transition is legal.
func roleAllowsTarget(order *trade.Order, actorID uuid.UUID, target trade.OrderStatus) bool {
	if order.SellerID == actorID {
		switch target {
		case trade.OrderStatusProcessing, trade.OrderStatusShipped, trade.OrderStatusCompleted:
			return true
		}
	}
	if order.BuyerID == actorID && target == trade.OrderStatusCanceled {
		return true
	}
	return false
}
