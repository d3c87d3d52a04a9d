package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

type Service struct {
	fs *firestore.Client
}

func NewService(fs *firestore.Client) *Service {
	return &Service{fs: fs}
}

func (s *Service) col(uid string) *firestore.CollectionRef {
	return s.fs.Collection("users").Doc(uid).Collection("notifications")
}

// Notify writes a notification for a user. Satisfies approval.Notifier.
func (s *Service) Notify(ctx context.Context, targetUID, title, body, ntype string, data map[string]any) error {
	targetUID = strings.TrimSpace(targetUID)
	title = strings.TrimSpace(title)
	if targetUID == "" || title == "" {
		return fmt.Errorf("%w: targetUid and title are required", ErrBadRequest)
	}

	id := uuid.NewString()
	n := Notification{
		ID:        id,
		Title:     title,
		Body:      strings.TrimSpace(body),
		Type:      ntype,
		Data:      data,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.col(targetUID).Doc(id).Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns a user's notifications, newest first, with an unread count.
func (s *Service) List(ctx context.Context, uid string, unreadOnly bool, limit int) (*ListResult, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.col(uid).Query
	if unreadOnly {
		query = query.Where("read", "==", false)
	}
	iter := query.OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)

	var out []Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list notifications: %w", err)
		}
		var n Notification
		if err := doc.DataTo(&n); err != nil {
			continue
		}
		n.ID = doc.Ref.ID
		out = append(out, n)
	}

	// unread count (simple scan)
	unreadIter := s.col(uid).Query.Where("read", "==", false).Documents(ctx)
	unread := int64(0)
	for {
		_, err := unreadIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			break
		}
		unread++
	}

	return &ListResult{Notifications: out, UnreadCount: unread}, nil
}

// MarkRead marks one notification, or all unread ones, as read.
func (s *Service) MarkRead(ctx context.Context, uid string, input MarkReadInput) (int, error) {
	uid = strings.TrimSpace(uid)
	input.Trim()
	if uid == "" {
		return 0, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	now := time.Now().UTC()

	if input.MarkAll {
		iter := s.col(uid).Query.Where("read", "==", false).Documents(ctx)
		batch := s.fs.Batch()
		count := 0
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return 0, fmt.Errorf("failed to list unread notifications: %w", err)
			}
			batch.Set(doc.Ref, map[string]interface{}{
				"read":   true,
				"readAt": now,
			}, firestore.MergeAll)
			count++
		}
		if count > 0 {
			if _, err := batch.Commit(ctx); err != nil {
				return 0, fmt.Errorf("failed to mark notifications read: %w", err)
			}
		}
		return count, nil
	}

	if input.NotificationID == "" {
		return 0, fmt.Errorf("%w: notificationId or markAll is required", ErrBadRequest)
	}

	ref := s.col(uid).Doc(input.NotificationID)
	if _, err := ref.Get(ctx); err != nil {
		return 0, fmt.Errorf("%w: notification not found", ErrNotFound)
	}
	if _, err := ref.Set(ctx, map[string]interface{}{
		"read":   true,
		"readAt": now,
	}, firestore.MergeAll); err != nil {
		return 0, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return 1, nil
}
