package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	rankingapp "github.com/marketloop/backend/internal/application/ranking"
	"github.com/marketloop/backend/internal/domain/ranking"
	"github.com/marketloop/backend/internal/domain/shared"
)

// RankingHandler handles reputation score endpoints. Leaderboards and user
// scores are public; manual adjustments are restricted to admins.
type RankingHandler struct {
	BaseHandler
	rankingService *rankingapp.RankingService
	authRequired   gin.HandlerFunc
}

// NewRankingHandler creates a new RankingHandler.
func NewRankingHandler(rankingService *rankingapp.RankingService, authRequired gin.HandlerFunc, log *zap.Logger) *RankingHandler {
	return &RankingHandler{
		BaseHandler:    NewBaseHandler(log),
		rankingService: rankingService,
		authRequired:   authRequired,
	}
}

// RegisterRoutes registers ranking routes.
func (h *RankingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rankings := rg.Group("/rankings")
	{
		rankings.GET("/leaderboard", h.Leaderboard)
		rankings.POST("/adjust", h.authRequired, h.Adjust)
	}

	rg.GET("/users/:id/scores", h.UserScores)
}

// AdjustScoreRequest is the request body for a manual score adjustment.
type AdjustScoreRequest struct {
	UserID   string  `json:"user_id" binding:"required,uuid"`
	Category string  `json:"category" binding:"required,oneof=content sales reputation"`
	Delta    float64 `json:"delta" binding:"required"`
}

func (h *RankingHandler) Adjust(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if !isAdminActor(c) {
		h.HandleDomainError(c, shared.ErrForbidden)
		return
	}

	var req AdjustScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindingError(c, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user_id format")
		return
	}

	err = h.rankingService.Adjust(c.Request.Context(), userID, ranking.Category(req.Category), req.Delta, &actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	scores, err := h.rankingService.UserScores(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, scores)
}

func (h *RankingHandler) UserScores(c *gin.Context) {
	userID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	scores, err := h.rankingService.UserScores(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, scores)
}

// Leaderboard returns the top users. With a category query parameter it ranks
// within that category, otherwise it ranks by summed score across categories.
func (h *RankingHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	category := c.Query("category")
	if category == "" {
		leaders, err := h.rankingService.OverallLeaderboard(c.Request.Context(), limit)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, leaders)
		return
	}

	if !ranking.Category(category).IsValid() {
		h.BadRequest(c, "Unknown category: "+category)
		return
	}

	leaders, err := h.rankingService.CategoryLeaderboard(c.Request.Context(), ranking.Category(category), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, leaders)
}
