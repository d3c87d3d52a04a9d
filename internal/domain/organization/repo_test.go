package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixRange(t *testing.T) {
	lo, hi := prefixRange("spo")
	require.Equal(t, "spo", lo)
	require.Greater(t, hi, lo, "upper bound must be strictly above the prefix or the range is empty")

	// names carrying the prefix fall inside [lo, hi)
	for _, name := range []string{"spo", "sportfolio academy", "sporting club", "spoé"} {
		assert.True(t, name >= lo && name < hi, "%q should match prefix %q", name, lo)
	}

	// names outside the prefix fall outside the range
	for _, name := range []string{"riverside", "spa resort", "sq"} {
		assert.False(t, name >= lo && name < hi, "%q should not match prefix %q", name, lo)
	}
}

func TestPrefixRange_EmptyPrefixStillOrdered(t *testing.T) {
	lo, hi := prefixRange("")
	assert.Greater(t, hi, lo)
}
