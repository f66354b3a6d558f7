package gig

type CreateGigRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"required,max=2000"`
	Budget      float64 `json:"budget" binding:"required,gte=1"`

	OwnerID int64 `json:"-"`
}
