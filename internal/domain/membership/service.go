package membership

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"sportfolio/backend/internal/cache"
	"sportfolio/backend/internal/domain/approval"
	"sportfolio/backend/internal/domain/organization"
)

type Service struct {
	fs       *firestore.Client
	orgRepo  *organization.Repo
	notifier approval.Notifier
	cache    *cache.Cache
	logger   *zap.Logger
}

func NewService(fs *firestore.Client, orgRepo *organization.Repo, notifier approval.Notifier, c *cache.Cache, logger *zap.Logger) *Service {
	return &Service{fs: fs, orgRepo: orgRepo, notifier: notifier, cache: c, logger: logger}
}

func (s *Service) col() *firestore.CollectionRef {
	return s.fs.Collection("memberships")
}

// TagOrganization creates a pending tag. At most one active tag is allowed
// per (user, organization, tagType).
func (s *Service) TagOrganization(ctx context.Context, uid string, input TagInput) (*Tag, error) {
	input.Trim()
	uid = strings.TrimSpace(uid)

	if uid == "" || input.OrganizationID == "" {
		return nil, fmt.Errorf("%w: uid and organizationId are required", ErrBadRequest)
	}
	if input.TagType == "" {
		input.TagType = TagPlayer
	}
	if !IsValidTagType(input.TagType) {
		return nil, fmt.Errorf("%w: tagType must be one of: %s", ErrBadRequest, strings.Join(ValidTagTypes, ", "))
	}

	if _, err := s.orgRepo.Get(ctx, input.OrganizationID); err != nil {
		return nil, fmt.Errorf("%w: organization not found", ErrNotFound)
	}

	// duplicate active tag check
	iter := s.col().
		Where("userUid", "==", uid).
		Where("organizationId", "==", input.OrganizationID).
		Where("tagType", "==", input.TagType).
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check existing tags: %w", err)
		}
		var existing Tag
		if err := doc.DataTo(&existing); err != nil {
			continue
		}
		if existing.Active() {
			return nil, fmt.Errorf("%w: %s tag for organization %s", ErrDuplicateTag, input.TagType, input.OrganizationID)
		}
	}

	now := time.Now().UTC()
	tag := Tag{
		UserUID:        uid,
		OrganizationID: input.OrganizationID,
		TagType:        input.TagType,
		Status:         approval.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ref := s.col().NewDoc()
	if _, err := ref.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create membership tag: %w", err)
	}
	tag.ID = ref.ID

	s.cache.Invalidate(ctx, "memberships", input.OrganizationID)
	return &tag, nil
}

// Decide is the organization-side approve/reject of a tag. The reviewer must
// be organization owner/staff, or a platform admin.
func (s *Service) Decide(ctx context.Context, reviewerUID, tagID string, isAdmin bool, input DecisionInput) (*Tag, error) {
	input.Trim()
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return nil, fmt.Errorf("%w: tag id is required", ErrBadRequest)
	}

	ref := s.col().Doc(tagID)
	var decided Tag

	err := s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("%w: membership tag not found", ErrNotFound)
		}
		var tag Tag
		if err := doc.DataTo(&tag); err != nil {
			return fmt.Errorf("failed to decode membership tag: %w", err)
		}
		tag.ID = doc.Ref.ID

		if !isAdmin {
			isStaff, err := s.orgRepo.IsStaff(ctx, tag.OrganizationID, reviewerUID)
			if err != nil {
				return fmt.Errorf("failed to check staff status: %w", err)
			}
			if !isStaff {
				return fmt.Errorf("%w: organization staff permission required", ErrUnauthorized)
			}
		}

		decided, err = ApplyDecision(tag, input, reviewerUID, time.Now().UTC())
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":         decided.Status,
			"decidedBy":      decided.DecidedBy,
			"decidedAt":      decided.DecidedAt,
			"decisionReason": decided.DecisionReason,
			"updatedAt":      decided.UpdatedAt,
		}
		if decided.MembershipFee > 0 {
			updates["membershipFee"] = decided.MembershipFee
		}
		return tx.Set(ref, updates, firestore.MergeAll)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, "memberships", decided.OrganizationID)
	s.notifyDecision(ctx, decided)
	return &decided, nil
}

func (s *Service) notifyDecision(ctx context.Context, tag Tag) {
	if s.notifier == nil {
		return
	}
	title := "Your membership request was " + string(tag.Status)
	err := s.notifier.Notify(ctx, tag.UserUID, title, tag.DecisionReason, "membership", map[string]any{
		"tagId":          tag.ID,
		"organizationId": tag.OrganizationID,
		"status":         string(tag.Status),
		"membershipFee":  tag.MembershipFee,
	})
	if err != nil {
		s.logger.Warn("membership notification failed", zap.String("tagId", tag.ID), zap.Error(err))
	}
}

// ListForOrganization returns tags for an organization, optionally filtered
// by status. Cached under the request signature.
func (s *Service) ListForOrganization(ctx context.Context, orgID, status string, limit int) ([]Tag, error) {
	orgID = strings.TrimSpace(orgID)
	status = strings.ToLower(strings.TrimSpace(status))
	if orgID == "" {
		return nil, fmt.Errorf("%w: orgId is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	key := cache.Key("memberships", orgID, fmt.Sprintf("status=%s:limit=%d", status, limit))
	var cached []Tag
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	query := s.col().Where("organizationId", "==", orgID)
	if status != "" {
		query = query.Where("status", "==", status)
	}
	iter := query.Limit(limit).Documents(ctx)

	out := []Tag{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list membership tags: %w", err)
		}
		var tag Tag
		if err := doc.DataTo(&tag); err != nil {
			continue
		}
		tag.ID = doc.Ref.ID
		out = append(out, tag)
	}

	s.cache.SetJSON(ctx, key, out, 30*time.Second)
	return out, nil
}

// ListForUser returns a user's own tags.
func (s *Service) ListForUser(ctx context.Context, uid string, limit int) ([]Tag, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	iter := s.col().Where("userUid", "==", uid).Limit(limit).Documents(ctx)
	out := []Tag{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list membership tags: %w", err)
		}
		var tag Tag
		if err := doc.DataTo(&tag); err != nil {
			continue
		}
		tag.ID = doc.Ref.ID
		out = append(out, tag)
	}
	return out, nil
}
