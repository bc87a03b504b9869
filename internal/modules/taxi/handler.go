package taxi

import (
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
	g.GET("/taxi/all", h.listAvailable)
}

func (h *Handler) listAvailable(c *gin.Context) {
	taxis, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, taxis)
}
