package bid

import (
	"context"

	"gigboard/internal/domain"
)

// BidRepository is the store contract the coordinator relies on. Hire
// must apply its guarded transitions as one atomic unit.
type BidRepository interface {
	Create(ctx context.Context, b *domain.Bid) error
	GetByID(ctx context.Context, id int64) (*domain.Bid, error)
	ExistsByGigAndFreelancer(ctx context.Context, gigID, freelancerID int64) (bool, error)
	ListByGig(ctx context.Context, gigID int64) ([]domain.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID int64) ([]domain.Bid, error)
	Hire(ctx context.Context, gigID, bidID int64) error
}

// GigRepository — read-only access to gigs; bid never writes gig state
// outside the Hire transaction.
type GigRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Gig, error)
}

// HireNotifier is invoked after a committed hire. Failures are the
// notifier's problem, never the hire's.
type HireNotifier interface {
	NotifyHired(ctx context.Context, freelancerID int64, gigTitle string) error
}
