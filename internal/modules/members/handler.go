package members

import (
	"net/http"
	"strings"

	"fitcrm/internal/pkg/response"
	"fitcrm/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already behind RequireAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/members")
	{
		group.GET("", h.List)
		group.GET("/stats", h.Stats)
		group.GET("/search", h.Search)
		group.GET("/:id", h.GetByID)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/restore", h.Restore)
	}
}

func (h *Handler) List(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	dtos, err := h.service.List(c.Request.Context(), sess)
	if err != nil {
		h.readError(c, err, "Failed to fetch members")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"members": dtos})
}

func (h *Handler) GetByID(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Malformed ids never reach the store.
		response.Error(c, http.StatusNotFound, "NOT_FOUND", ErrMemberNotFound.Error())
		return
	}

	dto, err := h.service.GetByID(c.Request.Context(), sess, id)
	if err != nil {
		h.readError(c, err, "Failed to fetch member")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"member": dto})
}

func (h *Handler) Stats(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), sess)
	if err != nil {
		h.readError(c, err, "Failed to fetch member stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) Search(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	dtos, err := h.service.Search(c.Request.Context(), sess, c.Query("q"))
	if err != nil {
		h.readError(c, err, "Failed to search members")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"members": dtos})
}

func (h *Handler) Create(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	h.writeResult(c, http.StatusCreated, h.service.Create(c.Request.Context(), sess, req))
}

func (h *Handler) Update(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	h.writeResult(c, http.StatusOK, h.service.Update(c.Request.Context(), sess, c.Param("id"), req))
}

func (h *Handler) Delete(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	h.writeResult(c, http.StatusOK, h.service.Delete(c.Request.Context(), sess, c.Param("id")))
}

func (h *Handler) Restore(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	h.writeResult(c, http.StatusOK, h.service.Restore(c.Request.Context(), sess, c.Param("id")))
}

// writeResult translates an ActionResult. The redirect variant is checked
// before anything else so it can never be swallowed by error mapping.
func (h *Handler) writeResult(c *gin.Context, successStatus int, res ActionResult) {
	if res.RedirectTo != "" {
		c.Redirect(http.StatusSeeOther, res.RedirectTo)
		return
	}

	if res.Success {
		response.Success(c, successStatus, res.Data)
		return
	}

	switch {
	case res.Error == ErrMemberNotFound.Error():
		response.Error(c, http.StatusNotFound, "NOT_FOUND", res.Error)
	case res.Error == ErrNoStudioAssigned.Error():
		response.Error(c, http.StatusInternalServerError, "NO_STUDIO_ASSIGNED", res.Error)
	case strings.HasPrefix(res.Error, "Failed to"):
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", res.Error)
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", res.Error)
	}
}

func (h *Handler) readError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrMemberNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrNoStudioAssigned:
		response.Error(c, http.StatusInternalServerError, "NO_STUDIO_ASSIGNED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
