package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"sportfolio/backend/internal/domain/approval"
)

type Service struct {
	fs       *firestore.Client
	notifier approval.Notifier
	logger   *zap.Logger
}

func NewService(fs *firestore.Client, notifier approval.Notifier, logger *zap.Logger) *Service {
	return &Service{fs: fs, notifier: notifier, logger: logger}
}

// SetStatusInput is the admin status override. It goes through the same
// transition table as the approval pipeline.
type SetStatusInput struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (in *SetStatusInput) Trim() {
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.Reason = strings.TrimSpace(in.Reason)
}

// SetStatus changes a user's approval status. Suspension and rejection
// require a reason; only transitions the machine allows go through.
func (s *Service) SetStatus(ctx context.Context, adminUID, uid string, input SetStatusInput) (*Profile, error) {
	input.Trim()
	uid = strings.TrimSpace(uid)

	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	target := approval.Status(input.Status)
	if !target.Valid() || target == approval.StatusPending {
		return nil, fmt.Errorf("%w: status must be approved, rejected or suspended", ErrBadRequest)
	}
	if (target == approval.StatusSuspended || target == approval.StatusRejected) && input.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required for %s", ErrBadRequest, target)
	}

	ref := s.fs.Collection("users").Doc(uid)
	var updated Profile

	err := s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		var p Profile
		if err := doc.DataTo(&p); err != nil {
			return fmt.Errorf("failed to decode user: %w", err)
		}
		p.UID = uid

		current := p.ApprovalStatus
		if current == "" {
			current = approval.StatusPending
		}
		if !approval.CanTransition(current, target) {
			return fmt.Errorf("%w: %s -> %s", approval.ErrInvalidStateTransition, current, target)
		}

		now := time.Now().UTC()
		if err := tx.Set(ref, map[string]interface{}{
			"approvalStatus": target,
			"approvalReason": input.Reason,
			"updatedAt":      now,
		}, firestore.MergeAll); err != nil {
			return fmt.Errorf("failed to update user status: %w", err)
		}

		p.ApprovalStatus = target
		p.ApprovalReason = input.Reason
		p.UpdatedAt = now
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		nerr := s.notifier.Notify(ctx, uid, "Your account status changed to "+input.Status, input.Reason,
			"account_status", map[string]any{"status": input.Status, "changedBy": adminUID})
		if nerr != nil {
			s.logger.Warn("status notification failed", zap.String("uid", uid), zap.Error(nerr))
		}
	}

	return &updated, nil
}

// Suspend is a shorthand for the approved -> suspended transition.
func (s *Service) Suspend(ctx context.Context, adminUID, uid, reason string) (*Profile, error) {
	return s.SetStatus(ctx, adminUID, uid, SetStatusInput{
		Status: string(approval.StatusSuspended),
		Reason: reason,
	})
}

// AssignRole sets a user's role. Independent of the approval flow.
func (s *Service) AssignRole(ctx context.Context, adminUID, uid, roleID string) (*Profile, error) {
	uid = strings.TrimSpace(uid)
	roleID = strings.ToLower(strings.TrimSpace(roleID))

	if uid == "" || roleID == "" {
		return nil, fmt.Errorf("%w: uid and roleId are required", ErrBadRequest)
	}

	ref := s.fs.Collection("users").Doc(uid)
	doc, err := ref.Get(ctx)
	if err != nil || !doc.Exists() {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	now := time.Now().UTC()
	_, err = ref.Set(ctx, map[string]interface{}{
		"role":      roleID,
		"roles":     firestore.ArrayUnion(roleID),
		"updatedAt": now,
		"updatedBy": adminUID,
	}, firestore.MergeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	out, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	var p Profile
	if err := out.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	p.UID = uid
	return &p, nil
}
