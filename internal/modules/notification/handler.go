package notification

import (
	"net/http"
	"strconv"

	"gigboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	{
		g.GET("", h.List)
		g.PATCH("/:id/read", h.MarkRead)
		g.POST("/read-all", h.MarkAllRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	list, unread, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get notifications")
		return
	}

	response.Success(c, http.StatusOK, ListResponse{
		Notifications: list,
		UnreadCount:   unread,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark as read")
		}
		return
	}

	response.Success(c, http.StatusOK, n)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "all_read"})
}
