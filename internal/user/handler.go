// File: internal/user/handler.go
package user

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

// RegisterRoutes sets up the routes for role registration operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	roles := router.Group("/roles")
	{
		roles.POST("/:role", h.registerUser)
		roles.GET("/:role", h.getUsersByRole)
		roles.GET("/user/:user_id", h.getRoleByUserID)
		roles.PUT("/:role/:user_id", h.updateUserRole)
		roles.DELETE("/all", h.deleteAllUsers)
	}
}

func (h *Handler) registerUser(c *gin.Context) {
	var data RoleData
	if err := c.ShouldBindJSON(&data); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	registered, err := h.service.RegisterUser(c.Request.Context(), c.Param("role"), data)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "User registered successfully.", registered)
}

func (h *Handler) getUsersByRole(c *gin.Context) {
	profiles, err := h.service.GetUsersByRole(c.Request.Context(), c.Param("role"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Users retrieved successfully.", profiles)
}

func (h *Handler) getRoleByUserID(c *gin.Context) {
	found, err := h.service.GetRoleByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User role retrieved successfully.", found)
}

func (h *Handler) updateUserRole(c *gin.Context) {
	var data RoleData
	if err := c.ShouldBindJSON(&data); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	updated, err := h.service.UpdateUserRole(c.Request.Context(), c.Param("role"), c.Param("user_id"), data)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User role updated successfully.", updated)
}

func (h *Handler) deleteAllUsers(c *gin.Context) {
	deleted, err := h.service.DeleteAllUsers(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All users deleted successfully.", gin.H{"deletedCount": deleted})
}
