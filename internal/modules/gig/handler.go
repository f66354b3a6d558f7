package gig

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

// RegisterPublicRoutes mounts the read-only listing endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/gigs", h.ListOpenGigs)
	rg.GET("/gigs/:id", h.GetGig)
}

// RegisterProtectedRoutes mounts the endpoints that need an identity.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/gigs", h.CreateGig)
	rg.GET("/gigs/mine", h.MyGigs)
}

func (h *Handler) CreateGig(c *gin.Context) {
	var req CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.OwnerID = c.GetInt64("user_id")

	g, err := h.service.CreateGig(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid gig data")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create gig")
		return
	}

	response.Success(c, http.StatusCreated, g)
}

func (h *Handler) ListOpenGigs(c *gin.Context) {
	list, err := h.service.ListOpenGigs(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list gigs")
		return
	}

	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetGig(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid gig ID")
		return
	}

	g, err := h.service.GetGig(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Gig not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get gig")
		return
	}

	response.Success(c, http.StatusOK, g)
}

func (h *Handler) MyGigs(c *gin.Context) {
	list, err := h.service.MyGigs(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list gigs")
		return
	}

	response.Success(c, http.StatusOK, list)
}
