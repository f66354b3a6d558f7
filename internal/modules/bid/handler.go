package bid

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
	rg.POST("/bids", h.SubmitBid)
	rg.GET("/bids/mine", h.MyBids)
	rg.GET("/bids/:id", h.ListBidsForGig)
	rg.PATCH("/bids/:id/hire", h.Hire)
}

func (h *Handler) SubmitBid(c *gin.Context) {
	var req SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.FreelancerID = c.GetInt64("user_id")

	b, err := h.service.SubmitBid(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

// ListBidsForGig returns the bids on a gig; only the gig owner may see
// them. The :id path param is the gig id.
func (h *Handler) ListBidsForGig(c *gin.Context) {
	gigID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || gigID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid gig ID")
		return
	}

	list, err := h.service.ListBidsForGig(c.Request.Context(), gigID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}

func (h *Handler) MyBids(c *gin.Context) {
	list, err := h.service.MyBids(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}

// Hire hires the bid with the :id path param for the requesting owner.
func (h *Handler) Hire(c *gin.Context) {
	bidID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bidID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bid ID")
		return
	}

	b, err := h.service.Hire(c.Request.Context(), bidID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bid data")
	case ErrGigNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Gig not found")
	case ErrBidNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bid not found")
	case ErrGigClosed:
		response.Error(c, http.StatusConflict, "GIG_CLOSED", "Gig is no longer accepting bids")
	case ErrBidUnavailable:
		response.Error(c, http.StatusConflict, "BID_UNAVAILABLE", "Bid is no longer available")
	case ErrDuplicateBid:
		response.Error(c, http.StatusConflict, "DUPLICATE_BID", "You have already placed a bid on this gig")
	case ErrSelfBid:
		response.Error(c, http.StatusBadRequest, "SELF_BID", "You cannot bid on your own gig")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized for this gig")
	case ErrTimeout:
		response.Error(c, http.StatusServiceUnavailable, "TIMEOUT", "Operation timed out, please retry")
	case ErrStoreUnavailable:
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store unavailable, please retry later")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
	}
}
