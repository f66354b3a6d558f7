package repository

import (
	"context"
	"time"

	"gigboard/internal/domain"

	"gorm.io/gorm"
)

type GigRepository struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) *GigRepository {
	return &GigRepository{db: db}
}

type gigModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	OwnerID     int64     `gorm:"column:owner_id"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Budget      float64   `gorm:"column:budget"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (gigModel) TableName() string { return "gigs" }

func toDomainGig(m gigModel) *domain.Gig {
	return &domain.Gig{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Budget:      m.Budget,
		Status:      domain.GigStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *GigRepository) Create(ctx context.Context, g *domain.Gig) error {
	m := gigModel{
		OwnerID:     g.OwnerID,
		Title:       g.Title,
		Description: g.Description,
		Budget:      g.Budget,
		Status:      string(g.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*g = *toDomainGig(m)
	return nil
}

func (r *GigRepository) GetByID(ctx context.Context, id int64) (*domain.Gig, error) {
	var m gigModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainGig(m), nil
}

// ListOpen returns open gigs, newest first. A non-empty search term
// matches title or description, case-insensitive.
func (r *GigRepository) ListOpen(ctx context.Context, search string) ([]domain.Gig, error) {
	q := r.db.WithContext(ctx).
		Model(&gigModel{}).
		Where("status = ?", string(domain.GigOpen))

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}

	var rows []gigModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Gig, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainGig(m))
	}
	return out, nil
}

func (r *GigRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Gig, error) {
	var rows []gigModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Gig, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainGig(m))
	}
	return out, nil
}
