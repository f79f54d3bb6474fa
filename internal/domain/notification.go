package domain

import (
	"context"
	"time"
)

// Notification types. Type is a closed enum on the wire.
const (
	NotificationTypeEventReminder = "event_reminder"
	NotificationTypeEventUpdate   = "event_update"
	NotificationTypeSystem        = "system"
	NotificationTypeOther         = "other"
)

// ValidNotificationType reports whether t is one of the closed enum values.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationTypeEventReminder, NotificationTypeEventUpdate,
		NotificationTypeSystem, NotificationTypeOther:
		return true
	}
	return false
}

// Notification is a per-user notification document. It lives in a separate
// document store with a lifecycle independent of Event and Publisher; EventID
// is a soft reference with no integrity enforced against event deletion.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	IsRead    bool           `json:"is_read"`
	EventID   string         `json:"event_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NotificationRepository defines the interface for notification storage.
// All read/mutate operations are scoped to the owning user.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	// ListByUser returns the user's notifications newest first.
	ListByUser(ctx context.Context, userID string, params PaginationParams) ([]*Notification, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	// MarkAllRead flips only documents with user_id=userID and is_read=false
	// and returns how many were modified.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
}

// NotificationService defines per-user notification operations. Create is
// privileged and intended for internal/admin use only.
type NotificationService interface {
	List(ctx context.Context, userID string, params PaginationParams) (items []*Notification, total int, err error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
	Create(ctx context.Context, n *Notification) error
}
