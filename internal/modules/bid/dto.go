package bid

type SubmitBidRequest struct {
	GigID   int64   `json:"gig_id" binding:"required"`
	Message string  `json:"message" binding:"required,max=1000"`
	Price   float64 `json:"price" binding:"required,gte=1"`

	FreelancerID int64 `json:"-"`
}
