package domain

import "time"

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidHired    BidStatus = "hired"
	BidRejected BidStatus = "rejected"
)

// bidTransitions is the closed transition table for bid statuses.
// hired and rejected are terminal.
var bidTransitions = map[BidStatus][]BidStatus{
	BidPending:  {BidHired, BidRejected},
	BidHired:    {},
	BidRejected: {},
}

// CanTransition reports whether s -> next is a legal bid transition.
func (s BidStatus) CanTransition(next BidStatus) bool {
	for _, t := range bidTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Bid struct {
	ID           int64     `json:"id"`
	GigID        int64     `json:"gig_id" gorm:"uniqueIndex:idx_one_bid_per_gig_freelancer"`
	FreelancerID int64     `json:"freelancer_id" gorm:"uniqueIndex:idx_one_bid_per_gig_freelancer"`
	Message      string    `json:"message" validate:"required,min=1,max=1000" gorm:"type:text"`
	Price        float64   `json:"price" validate:"required,gte=1"`
	Status       BidStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Gig        *Gig  `json:"gig,omitempty" gorm:"foreignKey:GigID"`
	Freelancer *User `json:"freelancer,omitempty" gorm:"foreignKey:FreelancerID"`
}
