// File: internal/transportrequest/handler.go
package transportrequest

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

// RegisterRoutes sets up the routes for transporter request operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/transporter-requests")
	{
		requests.POST("", h.createTransporterRequest)
		requests.GET("", h.listTransporterRequests)
		requests.GET("/:id", h.getTransporterRequest)
		requests.PUT("/:id", h.updateStatus)
	}
}

func (h *Handler) createTransporterRequest(c *gin.Context) {
	var req CreateTransporterRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	created, err := h.service.CreateTransporterRequest(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Transporter request created successfully.", created)
}

func (h *Handler) listTransporterRequests(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	requests, pagination, err := h.service.ListTransporterRequests(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Transporter requests retrieved successfully.", requests, pagination)
}

func (h *Handler) getTransporterRequest(c *gin.Context) {
	found, err := h.service.GetTransporterRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Transporter request retrieved successfully.", found)
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
	common.RespondOK(c, "Transporter request updated successfully.", updated)
}
