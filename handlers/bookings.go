package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"glowbook/middleware"
	"glowbook/services/booking"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBookingHandler handles POST /api/bookings (clients only).
func (h *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}

	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.WrapError(utils.KindInvalidInput, err, "Invalid request body."))
		return
	}

	bk, err := h.Bookings.Create(ident, req)
	if err != nil {
		logger.Warn("Booking creation rejected",
			zap.String("client_id", ident.UserID),
			zap.String("provider_id", req.ProviderID),
			zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bk)
}

// ListBookingsHandler handles GET /api/bookings. Clients see their own
// bookings, providers their calendar, admins everything (optionally filtered
// by client_id / provider_id query params).
func (h *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}

	bookings, err := h.Bookings.List(ident, c.Query("client_id"), c.Query("provider_id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *HandlerBundle) GetBookingHandler(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}
	bk, err := h.Bookings.Get(ident, c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

// bookingUpdate is the PUT /api/bookings/:id payload. A new date
// reschedules, a new status transitions; sending both applies them together.
type bookingUpdate struct {
	Date   *time.Time `json:"date"`
	Status *string    `json:"status"`
}

// UpdateBookingHandler handles PUT /api/bookings/:id.
func (h *HandlerBundle) UpdateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}
	id := c.Param("id")

	var update bookingUpdate
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		utils.JSONError(c, utils.WrapError(utils.KindInvalidInput, err, "Invalid request body."))
		return
	}

	if update.Date == nil && update.Status == nil {
		utils.JSONError(c, utils.NewError(utils.KindInvalidInput, "Provide a new date or a new status."))
		return
	}

	bk, err := h.Bookings.Update(ident, id, booking.UpdateRequest{Start: update.Date, Status: update.Status})
	if err != nil {
		logger.Warn("Booking update rejected", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

// DeleteBookingHandler handles DELETE /api/bookings/:id.
func (h *HandlerBundle) DeleteBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}
	id := c.Param("id")
	if err := h.Bookings.Delete(ident, id); err != nil {
		logger.Warn("Booking delete rejected", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
