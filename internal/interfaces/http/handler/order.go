package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	tradeapp "github.com/marketloop/backend/internal/application/trade"
	"github.com/marketloop/backend/internal/domain/trade"
)

// OrderHandler handles order lifecycle endpoints. All order routes require
// authentication: orders are only visible to their participants.
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
	authRequired gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *tradeapp.OrderService, authRequired gin.HandlerFunc, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  NewBaseHandler(log),
		orderService: orderService,
		authRequired: authRequired,
	}
}

// RegisterRoutes registers order routes.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.authRequired)
	{
		orders.POST("", h.Create)
		orders.GET("", h.ListMine)
		orders.GET("/:id", h.GetByID)
		orders.PATCH("/:id", h.UpdateDetails)
		orders.PATCH("/:id/status", h.UpdateStatus)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// CreateOrderRequest is the request body for placing an order. TotalPrice is
// the total the buyer saw; it is re-validated against the live product price.
type CreateOrderRequest struct {
	ProductID       string `json:"product_id" binding:"required,uuid"`
	Quantity        int64  `json:"quantity" binding:"required,gt=0"`
	TotalPrice      string `json:"total_price" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"max=500"`
}

// UpdateOrderStatusRequest is the request body for a status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped completed canceled"`
}

// UpdateOrderDetailsRequest is the request body for patching order details.
type UpdateOrderDetailsRequest struct {
	ShippingAddress *string `json:"shipping_address" binding:"omitempty,max=500"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	buyerID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product_id format")
		return
	}

	totalPrice, err := decimal.NewFromString(req.TotalPrice)
	if err != nil {
		h.BadRequest(c, "Invalid total_price format")
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), buyerID, tradeapp.CreateOrderRequest{
		ProductID:       productID,
		Quantity:        req.Quantity,
		TotalPrice:      totalPrice,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID,
		trade.OrderStatus(req.Status), actorID, isAdminActor(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, actorID, isAdminActor(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

func (h *OrderHandler) UpdateDetails(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	order, err := h.orderService.UpdateDetails(c.Request.Context(), orderID, tradeapp.UpdateOrderRequest{
		ShippingAddress: req.ShippingAddress,
	}, actorID, isAdminActor(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID, actorID, isAdminActor(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	buyerID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	filter, ok := h.bindListFilter(c, orderSortFields)
	if !ok {
		return
	}

	orders, total, err := h.orderService.ListByBuyer(c.Request.Context(), buyerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

var orderSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"status":      true,
	"total_price": true,
}
