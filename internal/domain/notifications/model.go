package notifications

import (
	"strings"
	"time"
)

// Notification is a per-user record written directly at transition time.
type Notification struct {
	ID        string                 `firestore:"id" json:"id"`
	Title     string                 `firestore:"title" json:"title"`
	Body      string                 `firestore:"body,omitempty" json:"body,omitempty"`
	Type      string                 `firestore:"type,omitempty" json:"type,omitempty"`
	Data      map[string]interface{} `firestore:"data,omitempty" json:"data,omitempty"`
	Read      bool                   `firestore:"read" json:"read"`
	ReadAt    *time.Time             `firestore:"readAt,omitempty" json:"readAt,omitempty"`
	CreatedAt time.Time              `firestore:"createdAt" json:"createdAt"`
}

// MarkReadInput marks one or all notifications as read.
type MarkReadInput struct {
	NotificationID string `json:"notificationId,omitempty"`
	MarkAll        bool   `json:"markAll,omitempty"`
}

func (in *MarkReadInput) Trim() {
	in.NotificationID = strings.TrimSpace(in.NotificationID)
}

// ListResult is the result of listing notifications.
type ListResult struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}
