package notification

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gigboard/internal/domain"

	"gorm.io/gorm"
)

const listLimit = 50

type Service struct {
	repo   NotificationRepository
	pusher Pusher
}

func NewService(repo NotificationRepository, pusher Pusher) *Service {
	return &Service{repo: repo, pusher: pusher}
}

// NotifyHired records the hire notification and attempts a live push.
// The durable record is the source of truth: a failed push is a silent
// no-op (the next listing fetch reconciles it), and a failed persist is
// logged but never propagated into the hire that triggered it.
func (s *Service) NotifyHired(ctx context.Context, freelancerID int64, gigTitle string) error {
	msg := fmt.Sprintf("You have been hired for %s!", gigTitle)

	n := &domain.Notification{
		UserID:  freelancerID,
		Type:    domain.NotifHired,
		Message: msg,
		IsRead:  false,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification: persist failed for user %d: %v", freelancerID, err)
		return err
	}

	// Fire-and-forget: the hire response must not wait on a slow or
	// stalled receiver. Delivery truth lives in the record above.
	if s.pusher != nil {
		event := Event{
			Type:    string(domain.NotifHired),
			Message: msg,
		}
		go s.pusher.SendToUser(freelancerID, event)
	}

	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		log.Printf("notification: unread count failed for user %d: %v", userID, err)
		unread = 0
	}

	return list, unread, nil
}

// MarkRead flips is_read for the requester's own notification.
// Marking an already-read notification again succeeds unchanged.
func (s *Service) MarkRead(ctx context.Context, id, requesterID int64) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if n.UserID != requesterID {
		return nil, ErrForbidden
	}

	if n.IsRead {
		return n, nil
	}

	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		return nil, err
	}

	n.IsRead = true
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
