package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxibook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(g *gin.RouterGroup) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(g *gin.RouterGroup) {
	g.GET("/auth/me", h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, ErrCustomerExists) {
			response.Detail(c, http.StatusConflict, "User already exists")
			return
		}
		_ = c.Error(err)
		response.Detail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Detail(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		_ = c.Error(err)
		response.Detail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handler) Me(c *gin.Context) {
	customer, err := h.service.Me(c.Request.Context(), c.GetInt64("customer_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Detail(c, http.StatusNotFound, "User not found")
			return
		}
		_ = c.Error(err)
		response.Detail(c, http.StatusInternalServerError, "Lookup failed")
		return
	}

	c.JSON(http.StatusOK, customer)
}
