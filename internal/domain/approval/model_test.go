package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.True(t, StatusSuspended.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusSuspended.Terminal())
}

func TestMissingFields(t *testing.T) {
	missing := MissingFields(TypeRegistration, map[string]any{})
	assert.Equal(t, []string{"userType"}, missing)

	missing = MissingFields(TypeRegistration, map[string]any{"userType": "  "})
	assert.Equal(t, []string{"userType"}, missing)

	missing = MissingFields(TypeRegistration, map[string]any{"userType": "athlete"})
	assert.Empty(t, missing)

	missing = MissingFields(TypeMembership, map[string]any{"organizationId": "org-1"})
	assert.Equal(t, []string{"tagType"}, missing)

	missing = MissingFields(TypeRoleChange, nil)
	assert.Equal(t, []string{"roleId"}, missing)
}
