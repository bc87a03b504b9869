package events

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"taxibook/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Token auth runs before the upgrade; origin is not the gate.
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterProtectedRoutes mounts the live event feed; the caller wraps
// the group with jwt auth plus the admin role check.
func (h *Handler) RegisterProtectedRoutes(g *gin.RouterGroup) {
	g.GET("/admin/events", h.Subscribe)
}

func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.Detail(c, http.StatusBadRequest, "WebSocket upgrade failed")
		return
	}

	id := h.hub.Register(conn)
	defer h.hub.Unregister(id)

	// Subscribers are write-only; the read loop only notices the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
