package notification

import "gigboard/internal/domain"

type ListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

// Event is the payload pushed over the live channel.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
