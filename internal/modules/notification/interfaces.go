package notification

import (
	"context"

	"gigboard/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

// Pusher is the live-delivery capability owned by the transport layer.
// SendToUser reports whether the user had an active channel; the
// dispatcher only reads connectivity, it never manages membership.
type Pusher interface {
	SendToUser(userID int64, event any) bool
}
