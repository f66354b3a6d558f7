package repository

import (
	"context"
	"errors"
	"time"

	"gigboard/internal/domain"

	"gorm.io/gorm"
)

// Guard failures from the hire transaction. Both mean a lost race, not
// a defect: another request committed the conflicting transition first.
var (
	ErrGigStatusConflict = errors.New("gig status guard failed")
	ErrBidStatusConflict = errors.New("bid status guard failed")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

type bidModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	GigID        int64     `gorm:"column:gig_id"`
	FreelancerID int64     `gorm:"column:freelancer_id"`
	Message      string    `gorm:"column:message"`
	Price        float64   `gorm:"column:price"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (bidModel) TableName() string { return "bids" }

func toDomainBid(m bidModel) *domain.Bid {
	return &domain.Bid{
		ID:           m.ID,
		GigID:        m.GigID,
		FreelancerID: m.FreelancerID,
		Message:      m.Message,
		Price:        m.Price,
		Status:       domain.BidStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// Create inserts a pending bid. The unique index on
// (gig_id, freelancer_id) makes the store the arbiter of duplicate
// submissions; callers translate the violation into a domain error.
func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) error {
	m := bidModel{
		GigID:        b.GigID,
		FreelancerID: b.FreelancerID,
		Message:      b.Message,
		Price:        b.Price,
		Status:       string(b.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBid(m)
	return nil
}

func (r *BidRepository) GetByID(ctx context.Context, id int64) (*domain.Bid, error) {
	var m bidModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBid(m), nil
}

func (r *BidRepository) ExistsByGigAndFreelancer(ctx context.Context, gigID, freelancerID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bidModel{}).
		Where("gig_id = ? AND freelancer_id = ?", gigID, freelancerID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BidRepository) ListByGig(ctx context.Context, gigID int64) ([]domain.Bid, error) {
	var rows []bidModel
	tx := r.db.WithContext(ctx).
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Bid, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBid(m))
	}
	return out, nil
}

func (r *BidRepository) ListByFreelancer(ctx context.Context, freelancerID int64) ([]domain.Bid, error) {
	var rows []bidModel
	tx := r.db.WithContext(ctx).
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Bid, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBid(m))
	}
	return out, nil
}

// Hire applies the hire transition as one atomic unit:
//
//	gig:     open    -> assigned  (guarded on status = open)
//	bid:     pending -> hired     (guarded on status = pending)
//	sibling: pending -> rejected  (bulk, idempotent)
//
// Every update re-asserts the expected prior status in its WHERE
// clause, so a stale read can never commit. A zero-row guard result
// aborts and rolls back the whole transaction; the first transaction
// to flip the gig open -> assigned wins, all later attempts observe
// ErrGigStatusConflict.
func (r *BidRepository) Hire(ctx context.Context, gigID, bidID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := updateGigStatus(tx, gigID, domain.GigOpen, domain.GigAssigned)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrGigStatusConflict
		}

		n, err = updateBidStatus(tx, bidID, domain.BidPending, domain.BidHired)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrBidStatusConflict
		}

		return rejectPendingSiblings(tx, gigID, bidID)
	})
}

// rejectPendingSiblings bulk-rejects every still-pending bid on the gig
// except the hired one. Bids already hired or rejected are left
// untouched, which keeps this step commutative across retries.
func rejectPendingSiblings(tx *gorm.DB, gigID, hiredBidID int64) error {
	if !domain.BidPending.CanTransition(domain.BidRejected) {
		return ErrInvalidTransition
	}
	return tx.Model(&bidModel{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, hiredBidID, string(domain.BidPending)).
		Update("status", string(domain.BidRejected)).Error
}

// updateGigStatus is the only writer of gig.status. Transitions absent
// from the domain transition table are rejected before touching the DB.
func updateGigStatus(tx *gorm.DB, id int64, from, to domain.GigStatus) (int64, error) {
	if !from.CanTransition(to) {
		return 0, ErrInvalidTransition
	}
	res := tx.Model(&gigModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	return res.RowsAffected, res.Error
}

// updateBidStatus is the only single-record writer of bid.status.
func updateBidStatus(tx *gorm.DB, id int64, from, to domain.BidStatus) (int64, error) {
	if !from.CanTransition(to) {
		return 0, ErrInvalidTransition
	}
	res := tx.Model(&bidModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	return res.RowsAffected, res.Error
}
