package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	engagementapp "github.com/marketloop/backend/internal/application/engagement"
)

// EngagementHandler handles reactions, comments and reshares on content.
type EngagementHandler struct {
	BaseHandler
	engagementService *engagementapp.EngagementService
	authRequired      gin.HandlerFunc
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(engagementService *engagementapp.EngagementService, authRequired gin.HandlerFunc, log *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		BaseHandler:       NewBaseHandler(log),
		engagementService: engagementService,
		authRequired:      authRequired,
	}
}

// RegisterRoutes registers engagement routes. Listing is public, acting on
// content requires authentication.
func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contents := rg.Group("/contents/:id")
	{
		contents.GET("/counts", h.Counts)
		contents.GET("/reactions", h.ListReactions)
		contents.GET("/comments", h.ListComments)
		contents.GET("/reshares", h.ListReshares)

		contents.POST("/reactions", h.authRequired, h.React)
		contents.DELETE("/reactions", h.authRequired, h.Unreact)
		contents.POST("/comments", h.authRequired, h.Comment)
		contents.POST("/reshares", h.authRequired, h.Reshare)
	}

	comments := rg.Group("/comments/:id")
	{
		comments.GET("/replies", h.ListReplies)
		comments.DELETE("", h.authRequired, h.DeleteComment)
	}
}

// ReactRequest is the request body for reacting to or resharing content.
// OwnerID identifies the content author so their score can be adjusted.
type ReactRequest struct {
	ContentKind string  `json:"content_kind" binding:"required,min=1,max=50"`
	OwnerID     *string `json:"owner_id" binding:"omitempty,uuid"`
}

// UnreactRequest is the request body for removing a reaction.
type UnreactRequest struct {
	OwnerID *string `json:"owner_id" binding:"omitempty,uuid"`
}

// CommentRequest is the request body for commenting on content.
type CommentRequest struct {
	ContentKind string  `json:"content_kind" binding:"required,min=1,max=50"`
	Body        string  `json:"body" binding:"required,max=5000"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	OwnerID     *string `json:"owner_id" binding:"omitempty,uuid"`
}

// DeleteCommentRequest is the optional request body for deleting a comment.
type DeleteCommentRequest struct {
	OwnerID *string `json:"owner_id" binding:"omitempty,uuid"`
}

func (h *EngagementHandler) React(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	contentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	ownerID, ok := h.parseOptionalUUID(c, req.OwnerID, "owner_id")
	if !ok {
		return
	}

	reaction, err := h.engagementService.React(c.Request.Context(), actorID, contentID, req.ContentKind, ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, reaction)
}

func (h *EngagementHandler) Unreact(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	contentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UnreactRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBindingError(c, err)
			return
		}
	}

	ownerID, ok := h.parseOptionalUUID(c, req.OwnerID, "owner_id")
	if !ok {
		return
	}

	if err := h.engagementService.Unreact(c.Request.Context(), actorID, contentID, ownerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *EngagementHandler) Comment(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	contentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	parentID, ok := h.parseOptionalUUID(c, req.ParentID, "parent_id")
	if !ok {
		return
	}
	ownerID, ok := h.parseOptionalUUID(c, req.OwnerID, "owner_id")
	if !ok {
		return
	}

	comment, err := h.engagementService.Comment(c.Request.Context(), actorID, contentID,
		req.ContentKind, req.Body, parentID, ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, comment)
}

func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	commentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req DeleteCommentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.handleBindingError(c, err)
			return
		}
	}

	ownerID, ok := h.parseOptionalUUID(c, req.OwnerID, "owner_id")
	if !ok {
		return
	}

	if err := h.engagementService.DeleteComment(c.Request.Context(), commentID, actorID, isAdminActor(c), ownerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *EngagementHandler) Reshare(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	contentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	ownerID, ok := h.parseOptionalUUID(c, req.OwnerID, "owner_id")
	if !ok {
		return
	}

	reshare, err := h.engagementService.Reshare(c.Request.Context(), actorID, contentID, req.ContentKind, ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, reshare)
}

func (h *EngagementHandler) Counts(c *gin.Context) {
	contentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	counts, err := h.engagementService.Counts(c.Request.Context(), contentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, counts)
}

func (h *EngagementHandler) ListReactions(c *gin.Context) {
	h.listEngagements(c, h.engagementService.ListReactions)
}

func (h *EngagementHandler) ListComments(c *gin.Context) {
	h.listEngagements(c, h.engagementService.ListComments)
}

func (h *EngagementHandler) ListReshares(c *gin.Context) {
	h.listEngagements(c, h.engagementService.ListReshares)
}

func (h *EngagementHandler) ListReplies(c *gin.Context) {
	h.listEngagements(c, h.engagementService.ListReplies)
}

type engagementLister func(ctx context.Context, id uuid.UUID, page, pageSize int) ([]engagementapp.EngagementResponse, int64, error)

func (h *EngagementHandler) listEngagements(c *gin.Context, list engagementLister) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req paginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	records, total, err := list(c.Request.Context(), id, req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, req.Page, req.PageSize)
}

type paginationRequest struct {
	Page     int `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,gte=1,lte=100"`
}

// parseOptionalUUID parses an optional UUID string from a request body.
func (h *BaseHandler) parseOptionalUUID(c *gin.Context, value *string, name string) (*uuid.UUID, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}
