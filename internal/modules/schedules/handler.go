package schedules

import (
	"net/http"
	"strings"

	"fitcrm/internal/modules/members"
	"fitcrm/internal/pkg/response"
	"fitcrm/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already behind RequireAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/classes")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) List(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	activeOnly := c.DefaultQuery("active", "true") != "false"

	rows, err := h.service.List(c.Request.Context(), sess, activeOnly)
	if err != nil {
		if err == members.ErrNoStudioAssigned {
			response.Error(c, http.StatusInternalServerError, "NO_STUDIO_ASSIGNED", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch class schedules")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": rows})
}

func (h *Handler) Create(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	h.writeResult(c, http.StatusCreated, h.service.Create(c.Request.Context(), sess, req))
}

func (h *Handler) Cancel(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	h.writeResult(c, http.StatusOK, h.service.Cancel(c.Request.Context(), sess, c.Param("id")))
}

func (h *Handler) writeResult(c *gin.Context, successStatus int, res members.ActionResult) {
	if res.Success {
		response.Success(c, successStatus, res.Data)
		return
	}

	switch {
	case res.Error == ErrScheduleNotFound.Error():
		response.Error(c, http.StatusNotFound, "NOT_FOUND", res.Error)
	case res.Error == members.ErrNoStudioAssigned.Error():
		response.Error(c, http.StatusInternalServerError, "NO_STUDIO_ASSIGNED", res.Error)
	case strings.HasPrefix(res.Error, "Failed to"):
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", res.Error)
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", res.Error)
	}
}
