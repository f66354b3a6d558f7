package domain

import "time"

type GigStatus string

const (
	GigOpen     GigStatus = "open"
	GigAssigned GigStatus = "assigned"
)

// gigTransitions is the closed transition table for gig statuses.
// A gig moves open -> assigned exactly once and never reverts.
var gigTransitions = map[GigStatus][]GigStatus{
	GigOpen:     {GigAssigned},
	GigAssigned: {},
}

// CanTransition reports whether s -> next is a legal gig transition.
func (s GigStatus) CanTransition(next GigStatus) bool {
	for _, t := range gigTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Gig struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required,min=1,max=2000" gorm:"type:text"`
	Budget      float64   `json:"budget" validate:"required,gte=1"`
	Status      GigStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
