package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/marketloop/backend/internal/application/catalog"
	"github.com/marketloop/backend/internal/domain/shared"
	"github.com/marketloop/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	authRequired   gin.HandlerFunc
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *catalogapp.ProductService, authRequired gin.HandlerFunc, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    NewBaseHandler(log),
		productService: productService,
		authRequired:   authRequired,
	}
}

// RegisterRoutes registers product routes. Reads are public, writes require
// authentication.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
		products.POST("", h.authRequired, h.Create)
		products.PATCH("/:id", h.authRequired, h.Update)
	}

	rg.GET("/sellers/:id/products", h.ListBySeller)
}

// CreateProductRequest is the request body for listing a product.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Price       string `json:"price" binding:"required"`
	Stock       int64  `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest is the request body for a partial product update.
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Price       *string `json:"price"`
	Stock       *int64  `json:"stock" binding:"omitempty,gte=0"`
	Active      *bool   `json:"active"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	sellerID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price format")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), sellerID, catalogapp.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	patch := catalogapp.UpdateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		Active:      req.Active,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			h.BadRequest(c, "Invalid price format")
			return
		}
		patch.Price = &price
	}

	product, err := h.productService.Update(c.Request.Context(), productID, patch, actorID, isAdminActor(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c, productSortFields)
	if !ok {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

func (h *ProductHandler) ListBySeller(c *gin.Context) {
	sellerID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	filter, ok := h.bindListFilter(c, productSortFields)
	if !ok {
		return
	}

	products, total, err := h.productService.ListBySeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

var productSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
	"stock":      true,
}

// bindListFilter binds pagination query parameters into a repository filter,
// rejecting sort fields outside the whitelist.
func (h *BaseHandler) bindListFilter(c *gin.Context, sortFields map[string]bool) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.handleBindingError(c, err)
		return shared.Filter{}, false
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		if !sortFields[req.OrderBy] {
			h.BadRequest(c, "Unsupported sort field: "+req.OrderBy)
			return shared.Filter{}, false
		}
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	return filter, true
}
