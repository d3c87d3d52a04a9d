package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportfolio/backend/internal/domain/approval"
)

func pendingTag() Tag {
	return Tag{
		ID:             "tag-1",
		UserUID:        "athlete-1",
		OrganizationID: "org-1",
		TagType:        TagPlayer,
		Status:         approval.StatusPending,
	}
}

func TestApplyDecision_ApproveWithFee(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	decided, err := ApplyDecision(pendingTag(), DecisionInput{
		Action:        "approve",
		MembershipFee: 500,
	}, "staff-1", now)
	require.NoError(t, err)

	assert.Equal(t, approval.StatusApproved, decided.Status)
	assert.Equal(t, int64(500), decided.MembershipFee)
	assert.Equal(t, "staff-1", decided.DecidedBy)
	assert.Equal(t, now, decided.DecidedAt)
}

func TestApplyDecision_RejectRequiresReason(t *testing.T) {
	_, err := ApplyDecision(pendingTag(), DecisionInput{Action: "reject"}, "staff-1", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, approval.ErrMissingReason)

	decided, err := ApplyDecision(pendingTag(), DecisionInput{
		Action: "reject",
		Reason: "roster is full",
	}, "staff-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, approval.StatusRejected, decided.Status)
	assert.Equal(t, "roster is full", decided.DecisionReason)
	assert.Zero(t, decided.MembershipFee)
}

func TestApplyDecision_FeeIgnoredOnReject(t *testing.T) {
	decided, err := ApplyDecision(pendingTag(), DecisionInput{
		Action:        "reject",
		Reason:        "no",
		MembershipFee: 900,
	}, "staff-1", time.Now())
	require.NoError(t, err)
	assert.Zero(t, decided.MembershipFee)
}

func TestApplyDecision_DecidedTagIsImmutable(t *testing.T) {
	decided, err := ApplyDecision(pendingTag(), DecisionInput{Action: "approve"}, "staff-1", time.Now())
	require.NoError(t, err)

	_, err = ApplyDecision(decided, DecisionInput{Action: "approve"}, "staff-2", time.Now())
	assert.ErrorIs(t, err, approval.ErrInvalidStateTransition)

	_, err = ApplyDecision(decided, DecisionInput{Action: "reject", Reason: "changed my mind"}, "staff-2", time.Now())
	assert.ErrorIs(t, err, approval.ErrInvalidStateTransition)
}

func TestApplyDecision_NegativeFee(t *testing.T) {
	_, err := ApplyDecision(pendingTag(), DecisionInput{
		Action:        "approve",
		MembershipFee: -1,
	}, "staff-1", time.Now())
	assert.True(t, IsErrBadRequest(err))
}

func TestTagActive(t *testing.T) {
	tag := pendingTag()
	assert.True(t, tag.Active())

	tag.Status = approval.StatusApproved
	assert.True(t, tag.Active())

	tag.Status = approval.StatusRejected
	assert.False(t, tag.Active())

	tag.Status = approval.StatusSuspended
	assert.False(t, tag.Active())
}
