// File: internal/integrity/handler.go
package integrity

import (
	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the cascade delete and admin maintenance routes.
// Product deletion lives here rather than in the product package because it
// touches every table.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.DELETE("/products/:id", h.deleteProduct)

	admin := router.Group("/admin")
	{
		admin.POST("/cleanup-orphaned-data", h.cleanupOrphanedData)
		admin.POST("/clear-all-data", h.clearAllData)
	}
}

func (h *Handler) deleteProduct(c *gin.Context) {
	result, err := h.service.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Product and all related data deleted successfully.", result)
}

func (h *Handler) cleanupOrphanedData(c *gin.Context) {
	result, err := h.service.CleanupOrphans(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Cleanup completed successfully.", result)
}

func (h *Handler) clearAllData(c *gin.Context) {
	result, err := h.service.ClearAllData(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All data cleared successfully.", result)
}
