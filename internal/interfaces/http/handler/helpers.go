package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marketloop/backend/internal/interfaces/http/middleware"
)

// isAdminActor reports whether the authenticated caller holds the admin role.
func isAdminActor(c *gin.Context) bool {
	return middleware.IsAdmin(c)
}
