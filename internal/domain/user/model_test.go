package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sportfolio/backend/internal/domain/approval"
)

func TestProfileTier(t *testing.T) {
	assert.Equal(t, TierBasic, Profile{}.Tier())
	assert.Equal(t, TierPro, Profile{SubscriptionTier: TierPro}.Tier())
}

func TestSeedDefaults(t *testing.T) {
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	seed := seedDefaults(now)

	assert.Equal(t, approval.StatusPending, seed["approvalStatus"])
	assert.Equal(t, TierBasic, seed["subscriptionTier"])
	assert.Equal(t, SubInactive, seed["subscriptionStatus"])
	assert.Equal(t, now, seed["createdAt"])

	// owned by the approval pipeline and webhook after first write
	assert.NotContains(t, seed, "approvalReason")
	assert.NotContains(t, seed, "role")
	assert.NotContains(t, seed, "updatedAt")
}
