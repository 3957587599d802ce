package payments

import (
	"net/http"
	"strconv"
	"strings"

	"fitcrm/internal/modules/members"
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
	group := protected.Group("/payments")
	{
		group.GET("", h.List)
		group.GET("/member/:id", h.ListForMember)
		group.POST("", h.Record)
	}
}

func (h *Handler) List(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.List(c.Request.Context(), sess, limit, offset)
	if err != nil {
		h.readError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": rows})
}

func (h *Handler) ListForMember(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", ErrPaymentMemberNotFound.Error())
		return
	}

	rows, err := h.service.ListForMember(c.Request.Context(), sess, memberID)
	if err != nil {
		h.readError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": rows})
}

func (h *Handler) Record(c *gin.Context) {
	sess, err := session.MustFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res := h.service.Record(c.Request.Context(), sess, req)
	if res.Success {
		response.Success(c, http.StatusCreated, res.Data)
		return
	}

	switch {
	case res.Error == ErrPaymentMemberNotFound.Error():
		response.Error(c, http.StatusNotFound, "NOT_FOUND", res.Error)
	case res.Error == members.ErrNoStudioAssigned.Error():
		response.Error(c, http.StatusInternalServerError, "NO_STUDIO_ASSIGNED", res.Error)
	case strings.HasPrefix(res.Error, "Failed to"):
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", res.Error)
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", res.Error)
	}
}

func (h *Handler) readError(c *gin.Context, err error) {
	switch err {
	case ErrPaymentMemberNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case members.ErrNoStudioAssigned:
		response.Error(c, http.StatusInternalServerError, "NO_STUDIO_ASSIGNED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch payments")
	}
}
