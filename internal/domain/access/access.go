// Package access derives feature availability from a user's subscription.
// It is a static lookup evaluated per-request; no state.
package access

// Tool names
const (
	ToolFacility = "facility"
	ToolFixtures = "fixtures"
	ToolScoring  = "scoring"
	ToolBrowse   = "browse"
)

// premiumTools require a pro or enterprise tier.
var premiumTools = map[string]bool{
	ToolFacility: true,
	ToolFixtures: true,
	ToolScoring:  true,
}

// HasToolAccess reports whether a subscription unlocks the named tool.
// Any status other than active (trial included) unlocks nothing.
func HasToolAccess(tier, status, tool string) bool {
	if status != "active" {
		return false
	}
	if premiumTools[tool] {
		return tier == "pro" || tier == "enterprise"
	}
	// read-only browsing is available on every tier
	return true
}

// IsPremiumTool reports whether the tool is tier-gated at all.
func IsPremiumTool(tool string) bool {
	return premiumTools[tool]
}
