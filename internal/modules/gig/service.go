package gig

import (
	"context"
	"errors"

	"gigboard/internal/domain"
	validatorpkg "gigboard/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	gigs GigRepository
}

func NewService(gigs GigRepository) *Service {
	return &Service{gigs: gigs}
}

func (s *Service) CreateGig(ctx context.Context, req CreateGigRequest) (*domain.Gig, error) {
	g := &domain.Gig{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Status:      domain.GigOpen,
	}
	if fields := validatorpkg.Validate(g); fields != nil {
		return nil, ErrValidation
	}

	if err := s.gigs.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) ListOpenGigs(ctx context.Context, search string) ([]domain.Gig, error) {
	return s.gigs.ListOpen(ctx, search)
}

func (s *Service) GetGig(ctx context.Context, id int64) (*domain.Gig, error) {
	g, err := s.gigs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *Service) MyGigs(ctx context.Context, ownerID int64) ([]domain.Gig, error) {
	return s.gigs.ListByOwner(ctx, ownerID)
}
