package organization

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sportfolio/backend/internal/domain/approval"
	"sportfolio/backend/internal/domain/user"
	"sportfolio/backend/internal/utils"
)

type Service struct {
	repo     *Repo
	userRepo *user.Repo
}

func NewService(repo *Repo, userRepo *user.Repo) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// Create registers a new organization. The owner must be an approved user
// and at least one sport must be offered before activation.
func (s *Service) Create(ctx context.Context, ownerUID string, input CreateInput) (*Organization, error) {
	input.Trim()
	ownerUID = strings.TrimSpace(ownerUID)

	if ownerUID == "" {
		return nil, fmt.Errorf("%w: owner uid is required", ErrBadRequest)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if len(input.SportsOffered) == 0 {
		return nil, fmt.Errorf("%w: at least one sport must be offered", ErrBadRequest)
	}

	owner, err := s.userRepo.Get(ctx, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%w: owner not found", ErrNotFound)
	}
	if owner.ApprovalStatus != approval.StatusApproved {
		return nil, fmt.Errorf("%w: owner must be an approved user", ErrUnauthorized)
	}

	now := time.Now().UTC()
	org := Organization{
		Name:                input.Name,
		NameLower:           utils.NormalizeNameLower(input.Name),
		Slug:                utils.Slugify(input.Name),
		OrgType:             input.OrgType,
		City:                input.City,
		Country:             input.Country,
		OwnerUID:            ownerUID,
		SportsOffered:       input.SportsOffered,
		FacilitiesAvailable: input.FacilitiesAvailable,
		VerificationStatus:  VerificationPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	out, err := s.repo.Create(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, orgID string) (*Organization, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, fmt.Errorf("%w: orgId is required", ErrBadRequest)
	}
	org, err := s.repo.Get(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("%w: organization not found", ErrNotFound)
	}
	return org, nil
}

func (s *Service) Search(ctx context.Context, q string, limit int) ([]Organization, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.SearchByNamePrefix(ctx, q, limit)
}

// Update modifies mutable fields. Only the owner, listed staff, or a platform
// admin may update.
func (s *Service) Update(ctx context.Context, actorUID, orgID string, isAdmin bool, input UpdateInput) (*Organization, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, fmt.Errorf("%w: orgId is required", ErrBadRequest)
	}

	if !isAdmin {
		isStaff, err := s.repo.IsStaff(ctx, orgID, actorUID)
		if err != nil {
			return nil, fmt.Errorf("%w: organization not found", ErrNotFound)
		}
		if !isStaff {
			return nil, fmt.Errorf("%w: owner or staff permission required", ErrUnauthorized)
		}
	}

	updates := map[string]interface{}{
		"updatedAt": time.Now().UTC(),
	}
	if input.City != nil {
		updates["city"] = strings.TrimSpace(*input.City)
	}
	if input.Country != nil {
		updates["country"] = strings.TrimSpace(*input.Country)
	}
	if input.SportsOffered != nil {
		sports := trimSlice(*input.SportsOffered)
		if len(sports) == 0 {
			return nil, fmt.Errorf("%w: at least one sport must be offered", ErrBadRequest)
		}
		updates["sportsOffered"] = sports
	}
	if input.FacilitiesAvailable != nil {
		updates["facilitiesAvailable"] = trimSlice(*input.FacilitiesAvailable)
	}
	if input.StaffUids != nil {
		updates["staffUids"] = trimSlice(*input.StaffUids)
	}

	if err := s.repo.Set(ctx, orgID, updates); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return s.repo.Get(ctx, orgID)
}

// SetVerification is the admin verification toggle.
func (s *Service) SetVerification(ctx context.Context, orgID, status string) (*Organization, error) {
	orgID = strings.TrimSpace(orgID)
	status = strings.ToLower(strings.TrimSpace(status))

	switch status {
	case VerificationPending, VerificationVerified, VerificationRejected:
	default:
		return nil, fmt.Errorf("%w: invalid verification status %q", ErrBadRequest, status)
	}

	if err := s.repo.Set(ctx, orgID, map[string]interface{}{
		"verificationStatus": status,
		"updatedAt":          time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("failed to set verification: %w", err)
	}
	return s.repo.Get(ctx, orgID)
}
