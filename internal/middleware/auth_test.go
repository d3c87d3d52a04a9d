package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(map[string]any{"admin": true}))
	assert.True(t, IsAdmin(map[string]any{"role": "admin"}))
	assert.True(t, IsAdmin(map[string]any{"roles": []interface{}{"coach", "admin"}}))

	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(map[string]any{}))
	assert.False(t, IsAdmin(map[string]any{"admin": false}))
	assert.False(t, IsAdmin(map[string]any{"role": "coach"}))
	assert.False(t, IsAdmin(map[string]any{"roles": []interface{}{"coach"}}))
}
