package membership

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sportfolio/backend/internal/domain/approval"
)

type fakeNotifier struct {
	calls []fakeNotification
	err   error
}

type fakeNotification struct {
	targetUID string
	title     string
	body      string
	ntype     string
	data      map[string]any
}

func (f *fakeNotifier) Notify(_ context.Context, targetUID, title, body, ntype string, data map[string]any) error {
	f.calls = append(f.calls, fakeNotification{targetUID, title, body, ntype, data})
	return f.err
}

func TestNotifyDecision_RecordsNotification(t *testing.T) {
	fake := &fakeNotifier{}
	svc := NewService(nil, nil, fake, nil, zap.NewNop())

	decided, err := ApplyDecision(pendingTag(), DecisionInput{
		Action:        "approve",
		MembershipFee: 500,
	}, "staff-1", time.Now().UTC())
	require.NoError(t, err)

	svc.notifyDecision(context.Background(), decided)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, "athlete-1", call.targetUID)
	assert.Equal(t, "membership", call.ntype)
	assert.Contains(t, call.title, string(approval.StatusApproved))
	assert.Equal(t, int64(500), call.data["membershipFee"])
	assert.Equal(t, "org-1", call.data["organizationId"])
}

func TestNotifyDecision_NotifierFailureIsSwallowed(t *testing.T) {
	fake := &fakeNotifier{err: errors.New("push gateway down")}
	svc := NewService(nil, nil, fake, nil, zap.NewNop())

	assert.NotPanics(t, func() {
		svc.notifyDecision(context.Background(), pendingTag())
	})
}

func TestNotifyDecision_NilNotifierIsNoOp(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, zap.NewNop())
	assert.NotPanics(t, func() {
		svc.notifyDecision(context.Background(), pendingTag())
	})
}
