package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusSuspended, true},
		{StatusSuspended, StatusApproved, true},

		{StatusPending, StatusSuspended, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
		{StatusSuspended, StatusRejected, false},
		{StatusApproved, StatusApproved, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestDecide_ApproveStampsReviewer(t *testing.T) {
	req := Request{
		ID:          "req-1",
		UserUID:     "user-1",
		RequestType: TypeRegistration,
		Status:      StatusPending,
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	decided, err := Decide(req, ActionApprove, "admin-1", "looks good", now)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, decided.Status)
	assert.Equal(t, "admin-1", decided.ReviewedBy)
	assert.Equal(t, now, decided.ReviewedAt)
	assert.Equal(t, "looks good", decided.ReviewComments)
	assert.Equal(t, now, decided.UpdatedAt)
}

func TestDecide_RejectRequiresReason(t *testing.T) {
	req := Request{Status: StatusPending}

	_, err := Decide(req, ActionReject, "admin-1", "   ", time.Now())
	require.Error(t, err)
	assert.True(t, IsErrMissingReason(err))

	decided, err := Decide(req, ActionReject, "admin-1", "incomplete documents", time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, decided.Status)
	assert.Equal(t, "incomplete documents", decided.ReviewComments)
}

func TestDecide_DecidedRequestCannotBeDecidedAgain(t *testing.T) {
	req := Request{Status: StatusPending}

	decided, err := Decide(req, ActionApprove, "admin-1", "", time.Now())
	require.NoError(t, err)

	_, err = Decide(decided, ActionApprove, "admin-2", "", time.Now())
	require.Error(t, err)
	assert.True(t, IsErrInvalidStateTransition(err))

	_, err = Decide(decided, ActionReject, "admin-2", "too late", time.Now())
	require.Error(t, err)
	assert.True(t, IsErrInvalidStateTransition(err))
}

func TestDecide_RequiresReviewer(t *testing.T) {
	_, err := Decide(Request{Status: StatusPending}, ActionApprove, "  ", "", time.Now())
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}

func TestDecide_UnknownAction(t *testing.T) {
	_, err := Decide(Request{Status: StatusPending}, Action("escalate"), "admin-1", "", time.Now())
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}
