package gig

import (
	"context"

	"gigboard/internal/domain"
)

type GigRepository interface {
	Create(ctx context.Context, g *domain.Gig) error
	GetByID(ctx context.Context, id int64) (*domain.Gig, error)
	ListOpen(ctx context.Context, search string) ([]domain.Gig, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Gig, error)
}
