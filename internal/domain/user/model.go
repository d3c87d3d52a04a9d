package user

import (
	"time"

	"sportfolio/backend/internal/domain/approval"
)

// Subscription tiers
const (
	TierBasic      = "basic"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Subscription statuses
const (
	SubActive   = "active"
	SubInactive = "inactive"
	SubTrial    = "trial"
)

type Profile struct {
	UID         string `firestore:"uid" json:"uid"`
	Email       string `firestore:"email,omitempty" json:"email,omitempty"`
	DisplayName string `firestore:"displayName,omitempty" json:"displayName,omitempty"`
	UserType    string `firestore:"userType,omitempty" json:"userType,omitempty"`

	ApprovalStatus approval.Status `firestore:"approvalStatus,omitempty" json:"approvalStatus,omitempty"`
	ApprovalReason string          `firestore:"approvalReason,omitempty" json:"approvalReason,omitempty"`

	SubscriptionTier   string `firestore:"subscriptionTier,omitempty" json:"subscriptionTier,omitempty"`
	SubscriptionStatus string `firestore:"subscriptionStatus,omitempty" json:"subscriptionStatus,omitempty"`

	Role  string   `firestore:"role,omitempty" json:"role,omitempty"`
	Roles []string `firestore:"roles,omitempty" json:"roles,omitempty"`

	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Tier returns the effective tier, defaulting to basic.
func (p Profile) Tier() string {
	if p.SubscriptionTier == "" {
		return TierBasic
	}
	return p.SubscriptionTier
}

// seedDefaults is merged into a profile the first time it is written. New
// accounts start pending on the free tier until the approval pipeline and
// the billing webhook say otherwise.
func seedDefaults(now time.Time) map[string]any {
	return map[string]any{
		"approvalStatus":     approval.StatusPending,
		"subscriptionTier":   TierBasic,
		"subscriptionStatus": SubInactive,
		"createdAt":          now,
	}
}
