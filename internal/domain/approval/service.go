package approval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"sportfolio/backend/internal/cache"
)

// Notifier delivers a notification to a user at transition time. It is a
// direct call, not a queue; failures are logged and do not roll back the
// decision.
type Notifier interface {
	Notify(ctx context.Context, targetUID, title, body, ntype string, data map[string]any) error
}

type Service struct {
	fs       *firestore.Client
	notifier Notifier
	cache    *cache.Cache
	logger   *zap.Logger
}

func NewService(fs *firestore.Client, notifier Notifier, c *cache.Cache, logger *zap.Logger) *Service {
	return &Service{fs: fs, notifier: notifier, cache: c, logger: logger}
}

func (s *Service) requestsCol() *firestore.CollectionRef {
	return s.fs.Collection("approvalRequests")
}

// Submit creates a pending request. requestData is snapshotted as-is.
func (s *Service) Submit(ctx context.Context, requesterUID string, input SubmitInput) (*Request, error) {
	input.Trim()
	requesterUID = strings.TrimSpace(requesterUID)

	if requesterUID == "" {
		return nil, fmt.Errorf("%w: requester uid is required", ErrBadRequest)
	}
	if !IsValidType(input.RequestType) {
		return nil, fmt.Errorf("%w: requestType must be one of: %s", ErrBadRequest, strings.Join(ValidTypes, ", "))
	}
	if missing := MissingFields(input.RequestType, input.RequestData); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrBadRequest, strings.Join(missing, ", "))
	}
	if input.RequestType == TypeRegistration {
		ut, _ := input.RequestData["userType"].(string)
		if !IsValidUserType(strings.ToLower(strings.TrimSpace(ut))) {
			return nil, fmt.Errorf("%w: userType must be one of: %s", ErrBadRequest, strings.Join(ValidUserTypes, ", "))
		}
	}

	now := time.Now().UTC()
	req := Request{
		UserUID:     requesterUID,
		RequestType: input.RequestType,
		RequestData: input.RequestData,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ref := s.requestsCol().NewDoc()
	if _, err := ref.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create approval request: %w", err)
	}
	req.ID = ref.ID

	s.cache.Invalidate(ctx, "approvals")
	return &req, nil
}

// Approve decides a pending request and flips the dependent entity in the
// same transaction.
func (s *Service) Approve(ctx context.Context, reviewerUID, requestID, comments string) (*Request, error) {
	return s.decide(ctx, reviewerUID, requestID, ActionApprove, comments)
}

// Reject decides a pending request. A non-blank reason is required.
func (s *Service) Reject(ctx context.Context, reviewerUID, requestID, reason string) (*Request, error) {
	return s.decide(ctx, reviewerUID, requestID, ActionReject, reason)
}

func (s *Service) decide(ctx context.Context, reviewerUID, requestID string, action Action, note string) (*Request, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, fmt.Errorf("%w: request id is required", ErrBadRequest)
	}

	ref := s.requestsCol().Doc(requestID)
	var decided Request

	err := s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("%w: approval request not found", ErrNotFound)
		}

		var req Request
		if err := doc.DataTo(&req); err != nil {
			return fmt.Errorf("failed to decode approval request: %w", err)
		}
		req.ID = doc.Ref.ID

		decided, err = Decide(req, action, reviewerUID, note, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := tx.Set(ref, map[string]interface{}{
			"status":         decided.Status,
			"reviewedBy":     decided.ReviewedBy,
			"reviewedAt":     decided.ReviewedAt,
			"reviewComments": decided.ReviewComments,
			"updatedAt":      decided.UpdatedAt,
		}, firestore.MergeAll); err != nil {
			return fmt.Errorf("failed to update approval request: %w", err)
		}

		return s.applyDependent(tx, decided)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, "approvals")
	s.notifyDecision(ctx, decided)
	return &decided, nil
}

// applyDependent flips the entity the request governs, inside the deciding
// transaction.
func (s *Service) applyDependent(tx *firestore.Transaction, req Request) error {
	now := req.UpdatedAt

	switch req.RequestType {
	case TypeRegistration:
		return tx.Set(s.fs.Collection("users").Doc(req.UserUID), map[string]interface{}{
			"approvalStatus": req.Status,
			"approvalReason": req.ReviewComments,
			"updatedAt":      now,
		}, firestore.MergeAll)

	case TypeMembership:
		membershipID, _ := req.RequestData["membershipId"].(string)
		if membershipID == "" {
			// submitted outside the tag flow; nothing to flip
			return nil
		}
		return tx.Set(s.fs.Collection("memberships").Doc(membershipID), map[string]interface{}{
			"status":    req.Status,
			"decidedBy": req.ReviewedBy,
			"decidedAt": req.ReviewedAt,
			"updatedAt": now,
		}, firestore.MergeAll)

	case TypeRoleChange:
		if req.Status != StatusApproved {
			return nil
		}
		roleID, _ := req.RequestData["roleId"].(string)
		return tx.Set(s.fs.Collection("users").Doc(req.UserUID), map[string]interface{}{
			"role":      roleID,
			"roles":     firestore.ArrayUnion(roleID),
			"updatedAt": now,
		}, firestore.MergeAll)
	}
	return nil
}

func (s *Service) notifyDecision(ctx context.Context, req Request) {
	if s.notifier == nil {
		return
	}
	title := "Your " + req.RequestType + " request was " + string(req.Status)
	body := req.ReviewComments
	err := s.notifier.Notify(ctx, req.UserUID, title, body, "approval", map[string]any{
		"requestId":   req.ID,
		"requestType": req.RequestType,
		"status":      string(req.Status),
	})
	if err != nil {
		s.logger.Warn("approval notification failed",
			zap.String("requestId", req.ID), zap.Error(err))
	}
}

// ListPending returns the admin review queue, newest first. Results are
// cached under the request signature and invalidated on every decision.
func (s *Service) ListPending(ctx context.Context, limit int) ([]Request, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	key := cache.Key("approvals", "pending", fmt.Sprintf("limit=%d", limit))
	var cached []Request
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	iter := s.requestsCol().
		Where("status", "==", string(StatusPending)).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)

	out := []Request{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list approval requests: %w", err)
		}
		var req Request
		if err := doc.DataTo(&req); err != nil {
			continue
		}
		req.ID = doc.Ref.ID
		out = append(out, req)
	}

	s.cache.SetJSON(ctx, key, out, 30*time.Second)
	return out, nil
}

// ListForUser returns a user's own requests, newest first.
func (s *Service) ListForUser(ctx context.Context, uid string, limit int) ([]Request, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	iter := s.requestsCol().
		Where("userUid", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)

	out := []Request{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list approval requests: %w", err)
		}
		var req Request
		if err := doc.DataTo(&req); err != nil {
			continue
		}
		req.ID = doc.Ref.ID
		out = append(out, req)
	}
	return out, nil
}
