package bid

import (
	"context"
	"errors"
	"log"

	"gigboard/internal/domain"
	validatorpkg "gigboard/internal/pkg/validator"
	"gigboard/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bids   BidRepository
	gigs   GigRepository
	notifs HireNotifier
}

func NewService(bids BidRepository, gigs GigRepository, notifs HireNotifier) *Service {
	return &Service{
		bids:   bids,
		gigs:   gigs,
		notifs: notifs,
	}
}

// SubmitBid validates and creates a pending bid against an open gig.
// The duplicate pre-check is advisory; two racing submissions from the
// same freelancer are resolved by the unique index on
// (gig_id, freelancer_id), with the loser seeing ErrDuplicateBid.
func (s *Service) SubmitBid(ctx context.Context, req SubmitBidRequest) (*domain.Bid, error) {
	b := &domain.Bid{
		GigID:        req.GigID,
		FreelancerID: req.FreelancerID,
		Message:      req.Message,
		Price:        req.Price,
		Status:       domain.BidPending,
	}
	if fields := validatorpkg.Validate(b); fields != nil {
		return nil, ErrValidation
	}

	gig, err := s.gigs.GetByID(ctx, req.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, storeErr(err)
	}

	if gig.Status != domain.GigOpen {
		return nil, ErrGigClosed
	}

	if gig.OwnerID == req.FreelancerID {
		return nil, ErrSelfBid
	}

	exists, err := s.bids.ExistsByGigAndFreelancer(ctx, req.GigID, req.FreelancerID)
	if err != nil {
		return nil, storeErr(err)
	}
	if exists {
		return nil, ErrDuplicateBid
	}

	if err := s.bids.Create(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateBid
		}
		return nil, storeErr(err)
	}

	return b, nil
}

// Hire transitions the gig to assigned and the chosen bid to hired,
// rejecting every sibling bid, as one committed transaction. Exactly
// one hire can succeed per gig: the first transaction to apply the
// gig's open -> assigned guard wins, every later attempt fails with
// ErrGigClosed or ErrBidUnavailable. Guard failures are expected
// concurrent outcomes and are never retried here; the caller decides.
func (s *Service) Hire(ctx context.Context, bidID, requesterID int64) (*domain.Bid, error) {
	b, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, storeErr(err)
	}

	if b.Status != domain.BidPending {
		return nil, ErrBidUnavailable
	}

	gig, err := s.gigs.GetByID(ctx, b.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, storeErr(err)
	}

	if gig.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	if gig.Status != domain.GigOpen {
		return nil, ErrGigClosed
	}

	// The checks above come from a plain read and may already be
	// stale. The transaction re-asserts both statuses in its guarded
	// updates; only those guards decide the winner.
	if err := s.bids.Hire(ctx, gig.ID, b.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrGigStatusConflict):
			return nil, ErrGigClosed
		case errors.Is(err, repository.ErrBidStatusConflict):
			return nil, ErrBidUnavailable
		}
		return nil, storeErr(err)
	}

	// The hire is the durable fact of record once committed.
	// Notification is best-effort and must not fail the caller.
	if s.notifs != nil {
		_ = s.notifs.NotifyHired(ctx, b.FreelancerID, gig.Title)
	}

	hired, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, storeErr(err)
	}
	return hired, nil
}

// ListBidsForGig returns all bids on a gig, owner-only.
func (s *Service) ListBidsForGig(ctx context.Context, gigID, requesterID int64) ([]domain.Bid, error) {
	gig, err := s.gigs.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, storeErr(err)
	}

	if gig.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	list, err := s.bids.ListByGig(ctx, gigID)
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}

func (s *Service) MyBids(ctx context.Context, freelancerID int64) ([]domain.Bid, error) {
	list, err := s.bids.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}

// storeErr maps contention timeouts to the retryable ErrTimeout;
// everything else with no domain meaning is fatal to the request and
// surfaces as ErrStoreUnavailable.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	log.Printf("bid: store error: %v", err)
	return ErrStoreUnavailable
}
