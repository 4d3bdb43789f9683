// File: internal/sellerrequest/handler.go
package sellerrequest

import (
	"errors"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for seller request operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/seller-requests")
	{
		requests.POST("", h.createSellerRequest)
		requests.GET("", h.listSellerRequests)
		requests.GET("/:id", h.getSellerRequest)
		requests.PUT("/:id", h.updateStatus)
	}
}

func (h *Handler) createSellerRequest(c *gin.Context) {
	var req CreateSellerRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	created, err := h.service.CreateSellerRequest(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Seller request created successfully.", created)
}

func (h *Handler) listSellerRequests(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	requests, pagination, err := h.service.ListSellerRequests(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Seller requests retrieved successfully.", requests, pagination)
}

func (h *Handler) getSellerRequest(c *gin.Context) {
	found, err := h.service.GetSellerRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Seller request retrieved successfully.", found)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Seller request updated successfully.", updated)
}
