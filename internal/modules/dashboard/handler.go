package dashboard

import (
	"log"
	"net/http"

	"fitcrm/internal/modules/members"
	"fitcrm/internal/pkg/response"
	"fitcrm/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// RegisterRoutes expects a group already behind RequireAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/dashboard")
	{
		group.GET("/stats", h.Stats)
		group.GET("/live", h.Live)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if !sess.HasStudio() {
		response.Error(c, http.StatusInternalServerError, "NO_STUDIO_ASSIGNED", members.ErrNoStudioAssigned.Error())
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// Live upgrades to a websocket scoped to the session's studio. The server
// only pushes; inbound frames are read and discarded to observe close.
func (h *Handler) Live(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil || !sess.HasStudio() {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("dashboard: websocket upgrade failed: %v", err)
		return
	}

	studioID := *sess.StudioID
	h.hub.Register(studioID, conn)
	defer h.hub.Unregister(studioID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
