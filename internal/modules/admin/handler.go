package admin

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

// RegisterPublicRoutes mounts the admin login endpoint.
func (h *Handler) RegisterPublicRoutes(g *gin.RouterGroup) {
	g.POST("/admin/login", h.Login)
}

// RegisterProtectedRoutes mounts the fleet-management endpoints; the
// caller wraps the group with jwt auth plus the admin role check.
func (h *Handler) RegisterProtectedRoutes(g *gin.RouterGroup) {
	g.GET("/admin/verify", h.Verify)

	g.POST("/admin/taxi/add", h.AddTaxi)
	g.PUT("/admin/taxi/update/:id", h.UpdateTaxi)
	g.DELETE("/admin/taxi/delete/:id", h.DeleteTaxi)
	g.GET("/admin/taxi/all", h.ListTaxis)

	g.POST("/admin/driver/add", h.AddDriver)
	g.PUT("/admin/driver/update/:id", h.UpdateDriver)
	g.DELETE("/admin/driver/delete/:id", h.DeleteDriver)
	g.GET("/admin/driver/all", h.ListDrivers)

	g.GET("/admin/bookings/completed", h.CompletedBookings)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	token, err := h.service.Login(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *Handler) AddTaxi(c *gin.Context) {
	var req TaxiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	t, err := h.service.AddTaxi(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Taxi added", "taxi": t})
}

func (h *Handler) UpdateTaxi(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req TaxiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	t, err := h.service.UpdateTaxi(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Taxi updated", "taxi": t})
}

func (h *Handler) DeleteTaxi(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTaxi(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Taxi deleted"})
}

func (h *Handler) ListTaxis(c *gin.Context) {
	taxis, err := h.service.ListTaxis(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taxis)
}

func (h *Handler) AddDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	d, err := h.service.AddDriver(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Driver added", "driver": d})
}

func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	d, err := h.service.UpdateDriver(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver updated", "driver": d})
}

func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDriver(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}

func (h *Handler) ListDrivers(c *gin.Context) {
	drivers, err := h.service.ListDrivers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) CompletedBookings(c *gin.Context) {
	rows, err := h.service.CompletedBookings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Detail(c, http.StatusUnauthorized, "Invalid admin credentials")
	case errors.Is(err, ErrValidation):
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid taxi status")
	case errors.Is(err, ErrNotFound):
		response.Detail(c, http.StatusNotFound, "Record not found")
	default:
		_ = c.Error(err)
		response.Detail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Detail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
