package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxibook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the endpoints that need no credential.
func (h *Handler) RegisterPublicRoutes(g *gin.RouterGroup) {
	g.POST("/booking/calculate-fare", h.CalculateFare)
}

// RegisterCustomerRoutes mounts the endpoints behind a customer token.
func (h *Handler) RegisterCustomerRoutes(g *gin.RouterGroup) {
	g.POST("/booking/create", h.Create)
	g.GET("/booking/user/me", h.ListMine)
	g.GET("/booking/:id", h.Get)
	g.PUT("/booking/:id", h.Update)
	g.DELETE("/booking/:id", h.Cancel)
}

// RegisterDriverRoutes mounts the driver payment-report endpoint; the
// caller wraps the group with the driver-token middleware.
func (h *Handler) RegisterDriverRoutes(g *gin.RouterGroup) {
	g.POST("/booking/driver/update", h.DriverUpdate)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), c.GetInt64("customer_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Booking created",
		"fare":         result.Fare,
		"driver_name":  result.DriverName,
		"driver_phone": result.DriverPhone,
	})
}

func (h *Handler) Get(c *gin.Context) {
	bookingID, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), bookingID, c.GetInt64("customer_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListForCustomer(c.Request.Context(), c.GetInt64("customer_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) Update(c *gin.Context) {
	bookingID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	fare, err := h.service.Update(c.Request.Context(), bookingID, c.GetInt64("customer_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated",
		"fare":    fare,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	bookingID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), bookingID, c.GetInt64("customer_id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

func (h *Handler) CalculateFare(c *gin.Context) {
	var req FareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	fare, err := CalculateFare(req.DistanceKM)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fare": fare})
}

func (h *Handler) DriverUpdate(c *gin.Context) {
	var req DriverUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	result, err := h.service.DriverReportPayment(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Booking updated successfully",
		"taxi_id":    result.TaxiID,
		"new_status": result.NewStatus,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid distance or payment status")
	case errors.Is(err, ErrNotFound):
		response.Detail(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, ErrTaxiUnavailable):
		response.Detail(c, http.StatusConflict, "Taxi no longer available")
	default:
		_ = c.Error(err)
		response.Detail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Detail(c, http.StatusBadRequest, "Invalid booking id")
		return 0, false
	}
	return id, true
}
