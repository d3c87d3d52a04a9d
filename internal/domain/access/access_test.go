package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasToolAccess(t *testing.T) {
	cases := []struct {
		name   string
		tier   string
		status string
		tool   string
		want   bool
	}{
		{"basic cannot use facility tool", "basic", "active", ToolFacility, false},
		{"basic cannot use fixtures tool", "basic", "active", ToolFixtures, false},
		{"basic cannot use scoring tool", "basic", "active", ToolScoring, false},
		{"basic can browse", "basic", "active", ToolBrowse, true},

		{"pro unlocks facility", "pro", "active", ToolFacility, true},
		{"pro unlocks fixtures", "pro", "active", ToolFixtures, true},
		{"pro unlocks scoring", "pro", "active", ToolScoring, true},
		{"enterprise unlocks facility", "enterprise", "active", ToolFacility, true},

		{"inactive pro unlocks nothing", "pro", "inactive", ToolFacility, false},
		{"inactive pro cannot browse", "pro", "inactive", ToolBrowse, false},
		{"trial does not count as active", "enterprise", "trial", ToolScoring, false},
		{"empty status unlocks nothing", "enterprise", "", ToolBrowse, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, HasToolAccess(c.tier, c.status, c.tool))
		})
	}
}

func TestIsPremiumTool(t *testing.T) {
	assert.True(t, IsPremiumTool(ToolFacility))
	assert.True(t, IsPremiumTool(ToolFixtures))
	assert.True(t, IsPremiumTool(ToolScoring))
	assert.False(t, IsPremiumTool(ToolBrowse))
	assert.False(t, IsPremiumTool("unknown"))
}
