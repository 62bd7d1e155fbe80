package domain

import "time"

type NotificationKind string

const (
	CartAdded    NotificationKind = "cart_added"
	CartUpdated  NotificationKind = "cart_updated"
	CartRemoved  NotificationKind = "cart_removed"
	CartCleared  NotificationKind = "cart_cleared"
	LikedAdded   NotificationKind = "liked_added"
	LikedRemoved NotificationKind = "liked_removed"
)

// A Notification is a user-facing message about a cart or favorites change.
type Notification struct {
	Kind      NotificationKind
	ProductID string
	Message   string
	Time      time.Time
}
