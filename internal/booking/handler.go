// File: internal/booking/handler.go
package booking

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

// RegisterRoutes sets up the routes for booking operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings)
		bookings.GET("/:id", h.getBooking)
		bookings.PUT("/:id", h.updateBooking)
		bookings.POST("/:id/request-cancellation", h.requestCancellation)
		bookings.POST("/:id/respond-cancellation", h.respondCancellation)
		bookings.POST("/:id/transported", h.markTransported)
	}
}

func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return false
	}
	return true
}

func (h *Handler) createBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Booking created successfully.", created)
}

func (h *Handler) listBookings(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	bookings, pagination, err := h.service.ListBookings(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Bookings retrieved successfully.", bookings, pagination)
}

func (h *Handler) getBooking(c *gin.Context) {
	found, err := h.service.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking retrieved successfully.", found)
}

func (h *Handler) updateBooking(c *gin.Context) {
	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking updated successfully.", updated)
}

func (h *Handler) requestCancellation(c *gin.Context) {
	var req RequestCancellationPayload
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.RequestCancellation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Cancellation requested.", updated)
}

func (h *Handler) respondCancellation(c *gin.Context) {
	var req RespondCancellationPayload
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.RespondCancellation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Cancellation response recorded.", updated)
}

func (h *Handler) markTransported(c *gin.Context) {
	var req MarkTransportedPayload
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	updated, err := h.service.MarkTransported(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking marked as transported.", updated)
}
