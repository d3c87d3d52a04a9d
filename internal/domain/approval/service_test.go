package approval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsValidUserType(t *testing.T) {
	for _, v := range ValidUserTypes {
		assert.True(t, IsValidUserType(v), v)
	}
	assert.False(t, IsValidUserType("wizard"))
	assert.False(t, IsValidUserType("Athlete"))
	assert.False(t, IsValidUserType(""))
}

func TestSubmit_ValidationRejectsBadInput(t *testing.T) {
	svc := NewService(nil, nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Submit(ctx, "", SubmitInput{RequestType: TypeRegistration})
	assert.True(t, IsErrBadRequest(err))

	_, err = svc.Submit(ctx, "user-1", SubmitInput{RequestType: "promotion"})
	assert.True(t, IsErrBadRequest(err))

	_, err = svc.Submit(ctx, "user-1", SubmitInput{RequestType: TypeRegistration})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
	assert.Contains(t, err.Error(), "userType")
}

func TestSubmit_RegistrationRequiresKnownUserType(t *testing.T) {
	svc := NewService(nil, nil, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), "user-1", SubmitInput{
		RequestType: TypeRegistration,
		RequestData: map[string]any{"userType": "wizard"},
	})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
	assert.Contains(t, err.Error(), "userType must be one of")
}
